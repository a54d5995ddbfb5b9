package coingecko

// MarketCoin is one row of the top-markets listing.
type MarketCoin struct {
	ID                       string  `json:"id"`
	Name                     string  `json:"name"`
	Symbol                   string  `json:"symbol"`
	Image                    string  `json:"image"`
	CurrentPrice             float64 `json:"current_price"`
	MarketCap                float64 `json:"market_cap"`
	TotalVolume              float64 `json:"total_volume"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
}

type CoinDetail struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Symbol      string          `json:"symbol"`
	Image       CoinImage       `json:"image"`
	MarketData  CoinMarketData  `json:"market_data"`
	Description CoinDescription `json:"description"`
}

type CoinImage struct {
	Large string `json:"large"`
	Small string `json:"small"`
	Thumb string `json:"thumb"`
}

type CoinMarketData struct {
	CurrentPrice             map[string]float64 `json:"current_price"`
	MarketCap                map[string]float64 `json:"market_cap"`
	TotalVolume              map[string]float64 `json:"total_volume"`
	PriceChangePercentage24h float64            `json:"price_change_percentage_24h"`
}

type CoinDescription struct {
	EN string `json:"en"`
}

// GlobalStats is the flattened /global payload, USD only.
type GlobalStats struct {
	TotalMarketCap            float64            `json:"total_market_cap"`
	TotalVolume               float64            `json:"total_volume"`
	MarketCapPercentage       map[string]float64 `json:"market_cap_percentage"`
	MarketCapChangePercent24h float64            `json:"market_cap_change_percentage_24h"`
}

// ChartPoint is one downsampled price sample with a period-appropriate label.
type ChartPoint struct {
	Time      string  `json:"time"`
	Price     float64 `json:"price"`
	Timestamp int64   `json:"timestamp"`
}

type MarketCapPoint struct {
	Date      string  `json:"date"`
	Value     float64 `json:"value"`
	Timestamp int64   `json:"timestamp"`
}
