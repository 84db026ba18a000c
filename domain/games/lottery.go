package games

import "coinbot/domain/entities"

// LotteryMinStake is the smallest lottery wager
const LotteryMinStake int64 = 1000

// lotteryWeightScale expresses the percentage weights in tenths of a percent
// so the 0.1% jackpot stays an exact integer
const lotteryWeightScale = 1000

// LotterySymbol is one reel outcome
type LotterySymbol struct {
	Name       string
	Weight     int // out of lotteryWeightScale
	Multiplier int64
}

// LotteryTable is the ordered reel. Weights sum to lotteryWeightScale.
var LotteryTable = []LotterySymbol{
	{Name: "egg", Weight: 420, Multiplier: 0},
	{Name: "chick", Weight: 270, Multiplier: 2},
	{Name: "hen", Weight: 160, Multiplier: 3},
	{Name: "bird", Weight: 100, Multiplier: 5},
	{Name: "meal", Weight: 49, Multiplier: 10},
	{Name: "jewel", Weight: 1, Multiplier: 100},
}

// LotteryResult is the outcome of one spin
type LotteryResult struct {
	Outcome
	Symbol LotterySymbol
}

// SymbolForDraw walks the cumulative weight table and returns the first symbol
// whose cumulative weight exceeds draw. draw must be in [0, lotteryWeightScale).
func SymbolForDraw(draw int) LotterySymbol {
	cumulative := 0
	for _, sym := range LotteryTable {
		cumulative += sym.Weight
		if draw < cumulative {
			return sym
		}
	}
	return LotteryTable[len(LotteryTable)-1]
}

// SpinLottery draws a symbol and settles stake against it
func SpinLottery(rng RNG, stake int64) LotteryResult {
	return SettleLottery(SymbolForDraw(rng.IntN(lotteryWeightScale)), stake)
}

// SettleLottery settles stake against a known symbol
func SettleLottery(sym LotterySymbol, stake int64) LotteryResult {
	return LotteryResult{
		Outcome: Outcome{
			Game:       entities.GameTypeLottery,
			Stake:      stake,
			Result:     sym.Name,
			Multiplier: sym.Multiplier,
			Won:        sym.Multiplier > 0,
		},
		Symbol: sym,
	}
}
