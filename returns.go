package riskreturn

// Returns computes simple period-over-period returns: r[i] = p[i+1]/p[i] - 1.
// It returns len(prices)-1 values, a zero previous price yields a 0 return.
func Returns(prices []float64) []float64 {
	if len(prices) < 2 {
		return []float64{}
	}
	r := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			continue
		}
		r[i-1] = prices[i]/prices[i-1] - 1
	}
	return r
}

// CumulativeReturns returns the running compounded return: the product of
// (1+r) up to each period, minus one.
func CumulativeReturns(returns []float64) []float64 {
	c := make([]float64, len(returns))
	acc := 1.0
	for i, r := range returns {
		acc *= 1 + r
		c[i] = acc - 1
	}
	return c
}

// NormalizedPrices rebases prices so that the first one is 1.
// It returns an empty slice when the first price is 0.
func NormalizedPrices(prices []float64) []float64 {
	if len(prices) == 0 || prices[0] == 0 {
		return []float64{}
	}
	n := make([]float64, len(prices))
	for i, p := range prices {
		n[i] = p / prices[0]
	}
	return n
}

// PeriodReturn is the return between the first and the last price: last/first - 1.
// It is 0 with fewer than two prices or a zero first price.
func PeriodReturn(prices []float64) float64 {
	if len(prices) < 2 || prices[0] == 0 {
		return 0
	}
	return prices[len(prices)-1]/prices[0] - 1
}
