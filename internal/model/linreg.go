package model

import (
	"errors"
	"math"

	"github.com/minhvu-dn/weather-predict/internal/pipeline"
)

var (
	// ErrInsufficientData is returned when the trainable frame has too
	// few rows for a meaningful fit. The threshold (> 2 rows) is
	// deliberately conservative rather than statistically derived.
	ErrInsufficientData = errors.New("not enough data to train a model (need > 2 rows with target)")

	// ErrDegenerate is returned when the normal equations are singular,
	// e.g. every row carries the identical feature vector.
	ErrDegenerate = errors.New("degenerate training data: features are linearly dependent")
)

// Coefficients is the fitted linear model mapping
// (temperature, hour, humidity) to the next-step temperature.
type Coefficients struct {
	Intercept   float64 `json:"intercept"`
	Temperature float64 `json:"temperature"`
	Hour        float64 `json:"hour"`
	Humidity    float64 `json:"humidity"`
}

// Predict evaluates the model on one feature vector. The result is
// deterministic: an unchanged model yields bit-identical output for the
// same inputs.
func (c Coefficients) Predict(temperature float64, hour int, humidity float64) float64 {
	return c.Intercept +
		c.Temperature*temperature +
		c.Hour*float64(hour) +
		c.Humidity*humidity
}

// Fit performs an ordinary least squares fit on the trainable frame:
// no regularization, no feature scaling, no train/test split. It solves
// the normal equations (XᵀX)β = Xᵀy for the design matrix
// X = [1, temperature, hour, humidity].
func Fit(trainable pipeline.TrainableFrame) (Coefficients, error) {
	if len(trainable) <= 2 {
		return Coefficients{}, ErrInsufficientData
	}

	const dims = 4 // intercept + three features

	var xtx [dims][dims]float64
	var xty [dims]float64

	for _, row := range trainable {
		x := [dims]float64{1, row.Temperature, float64(row.Hour), row.Humidity}
		y := *row.TargetTemp

		for i := 0; i < dims; i++ {
			for j := 0; j < dims; j++ {
				xtx[i][j] += x[i] * x[j]
			}
			xty[i] += x[i] * y
		}
	}

	beta, err := solve(xtx, xty)
	if err != nil {
		return Coefficients{}, err
	}

	return Coefficients{
		Intercept:   beta[0],
		Temperature: beta[1],
		Hour:        beta[2],
		Humidity:    beta[3],
	}, nil
}

// solve runs Gaussian elimination with partial pivoting on the 4x4
// system a·x = b.
func solve(a [4][4]float64, b [4]float64) ([4]float64, error) {
	const n = 4

	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return [4]float64{}, ErrDegenerate
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for row := col + 1; row < n; row++ {
			factor := a[row][col] / a[col][col]
			for k := col; k < n; k++ {
				a[row][k] -= factor * a[col][k]
			}
			b[row] -= factor * b[col]
		}
	}

	var x [4]float64
	for row := n - 1; row >= 0; row-- {
		sum := b[row]
		for k := row + 1; k < n; k++ {
			sum -= a[row][k] * x[k]
		}
		x[row] = sum / a[row][row]
	}
	return x, nil
}
