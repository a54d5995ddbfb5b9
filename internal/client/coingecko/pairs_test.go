package coingecko

import "testing"

func TestCoinIDFromPair(t *testing.T) {
	cases := []struct {
		pair   string
		wantID string
		wantOK bool
	}{
		{"BTC/USDT", "bitcoin", true},
		{"btc/usdt", "bitcoin", true},
		{"ETH/USD", "ethereum", true},
		{"SOL", "solana", true},
		{"ZZZ/USDT", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		id, ok := CoinIDFromPair(tc.pair)
		if ok != tc.wantOK || id != tc.wantID {
			t.Fatalf("CoinIDFromPair(%q)=(%q,%v) want=(%q,%v)", tc.pair, id, ok, tc.wantID, tc.wantOK)
		}
	}
}
