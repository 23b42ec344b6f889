package forecast

import (
	"time"

	"AgriForecast/internal/model"
)

var testBase = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// linearSeries builds n consecutive daily observations rising linearly from
// start to end.
func linearSeries(name string, n int, start, end float64) model.Series {
	obs := make([]model.Observation, n)
	for i := 0; i < n; i++ {
		price := start
		if n > 1 {
			price = start + (end-start)*float64(i)/float64(n-1)
		}
		obs[i] = model.Observation{Date: testBase.AddDate(0, 0, i), Price: price}
	}
	return model.Series{Commodity: name, Observations: obs}
}

// flatSeries builds n consecutive daily observations at a constant price.
func flatSeries(name string, n int, price float64) model.Series {
	return linearSeries(name, n, price, price)
}
