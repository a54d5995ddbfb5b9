package coingecko

import "strings"

// coinIDs maps base trading symbols to CoinGecko coin ids. Pairs whose base
// is missing here cannot be price-tracked until the map grows.
var coinIDs = map[string]string{
	"BTC":      "bitcoin",
	"ETH":      "ethereum",
	"SOL":      "solana",
	"BNB":      "binancecoin",
	"XRP":      "ripple",
	"ADA":      "cardano",
	"DOGE":     "dogecoin",
	"DOT":      "polkadot",
	"AVAX":     "avalanche-2",
	"MATIC":    "matic-network",
	"LINK":     "chainlink",
	"UNI":      "uniswap",
	"LTC":      "litecoin",
	"ATOM":     "cosmos",
	"ETC":      "ethereum-classic",
	"XLM":      "stellar",
	"NEAR":     "near",
	"APT":      "aptos",
	"ARB":      "arbitrum",
	"OP":       "optimism",
	"SUI":      "sui",
	"FTM":      "fantom",
	"ALGO":     "algorand",
	"VET":      "vechain",
	"SAND":     "the-sandbox",
	"MANA":     "decentraland",
	"AAVE":     "aave",
	"GRT":      "the-graph",
	"FIL":      "filecoin",
	"HBAR":     "hedera-hashgraph",
	"ICP":      "internet-computer",
	"SHIB":     "shiba-inu",
	"TRX":      "tron",
	"CRO":      "crypto-com-chain",
	"LEO":      "leo-token",
	"DAI":      "dai",
	"TON":      "the-open-network",
	"BCH":      "bitcoin-cash",
	"PEPE":     "pepe",
	"WIF":      "dogwifcoin",
	"RENDER":   "render-token",
	"INJ":      "injective-protocol",
	"IMX":      "immutable-x",
	"TIA":      "celestia",
	"SEI":      "sei-network",
	"STX":      "stacks",
	"RUNE":     "thorchain",
	"FET":      "fetch-ai",
	"PENDLE":   "pendle",
	"JUP":      "jupiter-exchange-solana",
	"PYTH":     "pyth-network",
	"BONK":     "bonk",
	"WLD":      "worldcoin-wld",
	"FLOKI":    "floki",
	"ENA":      "ethena",
	"ORDI":     "ordinals",
	"SATS":     "1000sats",
	"W":        "wormhole",
	"STRK":     "starknet",
	"MEME":     "memecoin",
	"NOT":      "notcoin",
	"TURBO":    "turbo",
	"AI16Z":    "ai16z",
	"VIRTUAL":  "virtual-protocol",
	"FARTCOIN": "fartcoin",
	"TRUMP":    "maga-trump",
}

// CoinIDFromPair resolves "BTC/USDT" to "bitcoin". The quote side is ignored.
func CoinIDFromPair(pair string) (string, bool) {
	base := strings.ToUpper(strings.TrimSpace(strings.SplitN(pair, "/", 2)[0]))
	id, ok := coinIDs[base]
	return id, ok
}
