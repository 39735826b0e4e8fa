package forecast_service

import (
	"math"
	"testing"
	"time"

	"github.com/zeez-dotcom/laundryao-sub003/models"
)

func fixedFactors(reference time.Time, indexes, precips []float64) []models.SeasonalFactor {
	factors := make([]models.SeasonalFactor, len(indexes))
	for i := range indexes {
		factors[i] = models.SeasonalFactor{
			Date:                     reference.AddDate(0, 0, i+1),
			TemperatureProxy:         20,
			PrecipitationProbability: precips[i],
			SeasonalityIndex:         indexes[i],
		}
	}
	return factors
}

func TestGenerate_KnownScenario(t *testing.T) {
	reference := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	generatedAt := reference.Add(9 * time.Hour)

	records := Generate(GenerateParams{
		Metric:      models.MetricOrders,
		CohortKey:   CohortKeyNone,
		Reference:   reference,
		HorizonDays: 3,
		Baseline:    100,
		Slope:       2,
		Factors:     fixedFactors(reference, []float64{1.00, 1.02, 0.98}, []float64{0.10, 0.10, 0.10}),
		GeneratedAt: generatedAt,
	})

	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	// trend [102, 104, 106], seasonal-adjusted [102, 106.08, 103.88],
	// weather penalty 0.99 throughout.
	wantValues := []float64{102 * 0.99, 106.08 * 0.99, 103.88 * 0.99}
	wantConfidence := []float64{0.24, 0.23, 0.22}

	for i, r := range records {
		if r.HorizonDays != i+1 {
			t.Errorf("record %d horizon = %d, want %d", i, r.HorizonDays, i+1)
		}
		if want := reference.AddDate(0, 0, i+1); !r.TargetDate.Equal(want) {
			t.Errorf("record %d target date = %v, want %v", i, r.TargetDate, want)
		}
		if math.Abs(r.Value-wantValues[i]) > 1e-9 {
			t.Errorf("record %d value = %v, want %v", i, r.Value, wantValues[i])
		}
		if wantLower := wantValues[i] * (1 - wantConfidence[i]); math.Abs(r.LowerBound-wantLower) > 1e-9 {
			t.Errorf("record %d lower = %v, want %v", i, r.LowerBound, wantLower)
		}
		if wantUpper := wantValues[i] * (1 + wantConfidence[i]); math.Abs(r.UpperBound-wantUpper) > 1e-9 {
			t.Errorf("record %d upper = %v, want %v", i, r.UpperBound, wantUpper)
		}
		if !r.GeneratedAt.Equal(generatedAt) {
			t.Errorf("record %d generatedAt = %v, want shared %v", i, r.GeneratedAt, generatedAt)
		}
		if r.Metadata["weatherPenalty"].(float64) != 0.99 {
			t.Errorf("record %d weatherPenalty = %v", i, r.Metadata["weatherPenalty"])
		}
	}
}

func TestGenerate_BoundsInvariant(t *testing.T) {
	reference := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	provider := SyntheticSeasonalProvider{}

	for _, metric := range []string{models.MetricOrders, models.MetricRevenue} {
		records := Generate(GenerateParams{
			Metric:      metric,
			CohortKey:   CohortKeyNone,
			Reference:   reference,
			HorizonDays: 45,
			Baseline:    80,
			Slope:       -3, // drives the trend negative inside the horizon
			Factors:     provider.Signal(reference, 45),
			GeneratedAt: reference,
		})

		prevConfidence := math.Inf(1)
		for _, r := range records {
			if r.LowerBound < 0 || r.LowerBound > r.Value || r.Value > r.UpperBound {
				t.Fatalf("%s horizon %d: bounds %v <= %v <= %v violated",
					metric, r.HorizonDays, r.LowerBound, r.Value, r.UpperBound)
			}
			if r.Value < 0 {
				t.Fatalf("%s horizon %d: clamped metric went negative: %v", metric, r.HorizonDays, r.Value)
			}
			confidence := 0.25 - 0.01*float64(r.HorizonDays)
			if confidence < 0.05 {
				confidence = 0.05
			}
			if confidence > prevConfidence || confidence < 0.05 {
				t.Fatalf("%s horizon %d: confidence %v widened or broke the floor", metric, r.HorizonDays, confidence)
			}
			prevConfidence = confidence
		}
	}
}

func TestGenerate_AverageOrderValueUnclamped(t *testing.T) {
	reference := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	derived := 31.5

	records := Generate(GenerateParams{
		Metric:                models.MetricAverageOrderValue,
		CohortKey:             CohortKeyNone,
		Reference:             reference,
		HorizonDays:           3,
		Baseline:              10,
		Slope:                 -20,
		Factors:               fixedFactors(reference, []float64{1, 1, 1}, []float64{0, 0, 0}),
		GeneratedAt:           reference,
		DerivedFromHistorical: &derived,
	})

	if records[0].Value >= 0 {
		t.Errorf("expected a negative projected average, got %v", records[0].Value)
	}
	for _, r := range records {
		got, ok := r.Metadata["derivedFromHistorical"].(float64)
		if !ok || got != derived {
			t.Errorf("horizon %d: derivedFromHistorical = %v, want %v", r.HorizonDays, r.Metadata["derivedFromHistorical"], derived)
		}
	}
}

func TestGenerate_DerivedReferenceOnlyForAverage(t *testing.T) {
	reference := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	derived := 31.5

	records := Generate(GenerateParams{
		Metric:                models.MetricOrders,
		CohortKey:             CohortKeyNone,
		Reference:             reference,
		HorizonDays:           1,
		Baseline:              10,
		Slope:                 0,
		Factors:               fixedFactors(reference, []float64{1}, []float64{0}),
		GeneratedAt:           reference,
		DerivedFromHistorical: &derived,
	})

	if _, ok := records[0].Metadata["derivedFromHistorical"]; ok {
		t.Error("orders metric must not carry the derivedFromHistorical reference")
	}
}
