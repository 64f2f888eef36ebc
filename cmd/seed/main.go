// Seeds the blacklist store and writes demo model bundles so the
// service can run end to end without the real training pipeline's
// artifacts.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ceylonsure/motor-risk/internal/model"
	"github.com/ceylonsure/motor-risk/internal/platform/config"
	"github.com/ceylonsure/motor-risk/internal/platform/logging"
	"github.com/ceylonsure/motor-risk/internal/store/dynamo"
	"github.com/ceylonsure/motor-risk/internal/store/mongo"
)

type blacklistUpserter interface {
	Upsert(ctx context.Context, customerID, reason string, addedAt time.Time) error
}

func main() {
	cfg := config.MustLoad()
	log := logging.New(cfg.Env)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := writeDemoBundles(cfg); err != nil {
		log.Error("failed to write demo model bundles", "err", err)
		return
	}
	log.Info("demo model bundles written",
		"ebm", cfg.EBMModelPath,
		"ngboost", cfg.NGBoostModelPath)

	var repo blacklistUpserter
	switch cfg.DBType {
	case "mongo":
		client, err := mongo.NewClient(ctx, cfg, log)
		if err != nil {
			log.Error("failed to connect to MongoDB", "err", err)
			return
		}
		defer client.Close(ctx)
		if err := mongo.EnsureIndexes(ctx, client.DB); err != nil {
			log.Error("failed to ensure indexes", "err", err)
			return
		}
		repo = mongo.NewBlacklistRepo(client.DB, 5*time.Second)

	case "dynamodb":
		client, err := dynamo.NewClient(ctx, cfg, log)
		if err != nil {
			log.Error("failed to connect to DynamoDB", "err", err)
			return
		}
		if err := dynamo.EnsureTables(ctx, client.DB, log); err != nil {
			log.Error("failed to ensure tables", "err", err)
			return
		}
		repo = dynamo.NewBlacklistRepo(client.DB)

	default:
		log.Info("DB_TYPE=memory: blacklist comes from BLACKLIST_IDS, nothing to seed")
		return
	}

	log.Info("seeding blacklist")
	seedBlacklist(ctx, repo)
	log.Info("done seeding")
}

func seedBlacklist(ctx context.Context, repo blacklistUpserter) {
	entries := []struct {
		id     string
		reason string
	}{
		{"BLK001", "fraudulent claim history"},
		{"BLK002", "repeated non-disclosure"},
		{"BLK003", "premium default, legal recovery pending"},
	}

	now := time.Now()
	for _, e := range entries {
		if err := repo.Upsert(ctx, e.id, e.reason, now); err != nil {
			fmt.Printf("failed to seed %s: %v\n", e.id, err)
		} else {
			fmt.Printf("seeded: %s\n", e.id)
		}
	}
}

func writeDemoBundles(cfg *config.Config) error {
	ebm := model.EBMBundle{
		Features: []string{
			"driver_age_band",
			"vehicle_age_band",
			"driver_gender",
			"vehicle_usage_type",
			"parking_type",
			"accidents_last_3_years",
			"num_claims_within_1_year",
			"ncb_percentage",
			"engine_capacity_cc",
			"has_lpg_conversion",
		},
		Intercept: -2.30,
		Terms: map[string]model.Term{
			"driver_age_band": {
				Type: model.TermCategorical,
				Labels: map[string]float64{
					"18_24": 0.85, "25_34": 0.20, "35_44": -0.10,
					"45_59": -0.05, "60+": 0.35,
				},
			},
			"vehicle_age_band": {
				Type: model.TermCategorical,
				Labels: map[string]float64{
					"0_3": -0.15, "4_7": 0.00, "8_12": 0.20, "13+": 0.45,
				},
			},
			"driver_gender": {
				Type:   model.TermCategorical,
				Labels: map[string]float64{"Male": 0.10, "Female": -0.10},
			},
			"vehicle_usage_type": {
				Type: model.TermCategorical,
				Labels: map[string]float64{
					"Private": -0.10, "Business": 0.25, "Rent": 0.40,
					"Taxi": 0.45, "School": 0.15, "Other": 0.10,
				},
			},
			"parking_type": {
				Type: model.TermCategorical,
				Labels: map[string]float64{
					"Garage": -0.15, "Car Park": 0.00, "Street": 0.20,
					"Road": 0.25, "Other": 0.10,
				},
			},
			"accidents_last_3_years": {
				Type:   model.TermNumeric,
				Edges:  []float64{1, 2, 4},
				Scores: []float64{-0.20, 0.35, 0.70, 1.10},
			},
			"num_claims_within_1_year": {
				Type:   model.TermNumeric,
				Edges:  []float64{1, 2},
				Scores: []float64{-0.10, 0.40, 0.90},
			},
			"ncb_percentage": {
				Type:   model.TermNumeric,
				Edges:  []float64{10, 40, 70},
				Scores: []float64{0.25, 0.00, -0.20, -0.40},
			},
			"engine_capacity_cc": {
				Type:   model.TermNumeric,
				Edges:  []float64{1000, 1800, 3000},
				Scores: []float64{-0.10, 0.00, 0.25, 0.50},
			},
			"has_lpg_conversion": {
				Type:   model.TermNumeric,
				Edges:  []float64{1},
				Scores: []float64{0.00, 0.30},
			},
		},
	}

	ngb := model.NGBoostBundle{
		Dist: "bernoulli",
		FeatureColumns: []string{
			"driver_age",
			"years_of_driving_experience",
			"accidents_last_3_years",
			"num_claims_within_1_year",
			"ncb_percentage",
			"engine_capacity_cc",
			"vehicle_age_years",
			"has_lpg_conversion",
			"driver_gender_Male",
			"driver_gender_Female",
			"vehicle_usage_type_Private",
			"vehicle_usage_type_Business",
			"vehicle_usage_type_Taxi",
			"parking_type_Garage",
			"parking_type_Street",
			"parking_type_Road",
		},
		Intercept: -1.80,
		Coefficients: map[string]float64{
			"driver_age":                  -0.012,
			"years_of_driving_experience": -0.030,
			"accidents_last_3_years":      0.450,
			"num_claims_within_1_year":    0.380,
			"ncb_percentage":              -0.008,
			"engine_capacity_cc":          0.0002,
			"vehicle_age_years":           0.025,
			"has_lpg_conversion":          0.300,
			"driver_gender_Male":          0.080,
			"driver_gender_Female":        -0.080,
			"vehicle_usage_type_Private":  -0.100,
			"vehicle_usage_type_Business": 0.250,
			"vehicle_usage_type_Taxi":     0.420,
			"parking_type_Garage":         -0.120,
			"parking_type_Street":         0.180,
			"parking_type_Road":           0.220,
		},
		ClaimScale: 1_500_000,
	}

	if err := writeJSON(cfg.EBMModelPath, ebm); err != nil {
		return err
	}
	return writeJSON(cfg.NGBoostModelPath, ngb)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
