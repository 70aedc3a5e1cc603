package domain

// TokenPair - идентификатор пула Uniswap: адреса контрактов token0/token1.
type TokenPair struct {
	Token0 string
	Token1 string
}

// SymbolConfig - статическая привязка логического символа к тикерам бирж.
// Если биржа не торгует символ, поле остается пустым и адаптер не опрашивается.
// Конфигурация read-only: собирается один раз на старте и больше не меняется.
type SymbolConfig struct {
	Key     string // "BTC"
	Name    string // "BTC/USDT"
	Binance string
	Gateio  string
	Bybit   string
	Kucoin  string
	OKX     string
	Huobi   string
	MEXC    string
	Uniswap *TokenPair // nil, если пула нет
}

// DefaultSymbols возвращает отслеживаемые символы в фиксированном порядке.
// Порядок важен: он определяет порядок перебора при check_ALL и в тикe мониторинга.
func DefaultSymbols() []SymbolConfig {
	return []SymbolConfig{
		{
			Key:     "BTC",
			Name:    "BTC/USDT",
			Binance: "BTCUSDT",
			Gateio:  "BTC_USDT",
			Bybit:   "BTCUSDT",
			Kucoin:  "BTC-USDT",
			OKX:     "BTC-USDT",
			Huobi:   "btcusdt",
			MEXC:    "BTCUSDT",
			Uniswap: &TokenPair{
				Token0: "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599", // WBTC
				Token1: "0xdAC17F958D2ee523a2206206994597C13D831ec7", // USDT
			},
		},
		{
			Key:     "ETH",
			Name:    "ETH/USDT",
			Binance: "ETHUSDT",
			Gateio:  "ETH_USDT",
			Bybit:   "ETHUSDT",
			Kucoin:  "ETH-USDT",
			OKX:     "ETH-USDT",
			Huobi:   "ethusdt",
			MEXC:    "ETHUSDT",
			Uniswap: &TokenPair{
				Token0: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", // WETH
				Token1: "0xdAC17F958D2ee523a2206206994597C13D831ec7", // USDT
			},
		},
		{
			Key:     "BNB",
			Name:    "BNB/USDT",
			Binance: "BNBUSDT",
			Gateio:  "BNB_USDT",
			Bybit:   "BNBUSDT",
			Kucoin:  "BNB-USDT",
			OKX:     "BNB-USDT",
			MEXC:    "BNBUSDT",
		},
		{
			Key:     "SOL",
			Name:    "SOL/USDT",
			Binance: "SOLUSDT",
			Gateio:  "SOL_USDT",
			Bybit:   "SOLUSDT",
			Kucoin:  "SOL-USDT",
			OKX:     "SOL-USDT",
			MEXC:    "SOLUSDT",
		},
	}
}

// FindSymbol ищет символ по ключу. Второе значение false, если символ не настроен.
func FindSymbol(symbols []SymbolConfig, key string) (SymbolConfig, bool) {
	for _, s := range symbols {
		if s.Key == key {
			return s, true
		}
	}
	return SymbolConfig{}, false
}
