package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"aisqlkit/internal/aisql"
)

// runEmbedDemo embeds all unprocessed reviews in one provider call and
// stores each vector JSON-encoded. A failed batch persists a failed row
// per review so re-runs only pick up genuinely new reviews.
func runEmbedDemo(ctx context.Context, cfg Config, db *sql.DB, client *aisql.Client) (DemoResult, error) {
	var result DemoResult

	reviews, err := ReviewsMissingEmbeddings(db)
	if err != nil {
		return result, err
	}
	if len(reviews) == 0 {
		return result, nil
	}

	texts := make([]string, len(reviews))
	for i, r := range reviews {
		texts[i] = r.Body
	}

	model := cfg.EmbedModel
	res, usage := client.EmbedText(ctx, model, texts)
	recordUsage(db, aisql.FuncEmbed, model, usage)

	vectors, ok := res.Value()
	if !ok {
		log.Printf("embed batch request=%s error: %v", res.RequestID(), res.Err())
		result.Errors = append(result.Errors, res.Err().Error())
		for _, r := range reviews {
			result.count(res.Status())
			if err := InsertEmbedding(db, r.ID, model, 0, "", res.Status().String(), res.RequestID()); err != nil {
				return result, err
			}
		}
		return result, nil
	}

	for i, r := range reviews {
		encoded, err := json.Marshal(vectors[i])
		if err != nil {
			return result, fmt.Errorf("encoding vector for review %d: %w", r.ID, err)
		}
		result.count(aisql.StatusSuccess)
		if err := InsertEmbedding(db, r.ID, model, len(vectors[i]), string(encoded), aisql.StatusSuccess.String(), res.RequestID()); err != nil {
			return result, err
		}
	}
	return result, nil
}

// runSimilarityDemo scores every unprocessed review against the
// configured probe text. The probe and all review bodies are embedded in
// a single call; cosine runs locally.
func runSimilarityDemo(ctx context.Context, cfg Config, db *sql.DB, client *aisql.Client) (DemoResult, error) {
	var result DemoResult

	reviews, err := ReviewsMissingSimilarity(db)
	if err != nil {
		return result, err
	}
	if len(reviews) == 0 {
		return result, nil
	}

	probe := cfg.SimilarityProbe
	texts := make([]string, 0, len(reviews)+1)
	texts = append(texts, probe)
	for _, r := range reviews {
		texts = append(texts, r.Body)
	}

	model := cfg.EmbedModel
	res, usage := client.EmbedText(ctx, model, texts)
	recordUsage(db, aisql.FuncSimilarity, model, usage)

	vectors, ok := res.Value()
	if !ok {
		log.Printf("similarity batch request=%s error: %v", res.RequestID(), res.Err())
		result.Errors = append(result.Errors, res.Err().Error())
		for _, r := range reviews {
			result.count(res.Status())
			if err := InsertSimilarity(db, r.ID, probe, sql.NullFloat64{}, res.Status().String(), res.RequestID()); err != nil {
				return result, err
			}
		}
		return result, nil
	}

	probeVec := vectors[0]
	for i, r := range reviews {
		score, err := aisql.Cosine(probeVec, vectors[i+1])
		if err != nil {
			result.count(aisql.StatusError)
			result.Errors = append(result.Errors, err.Error())
			if err := InsertSimilarity(db, r.ID, probe, sql.NullFloat64{}, aisql.StatusError.String(), res.RequestID()); err != nil {
				return result, err
			}
			continue
		}
		result.count(aisql.StatusSuccess)
		if err := InsertSimilarity(db, r.ID, probe, sql.NullFloat64{Float64: score, Valid: true}, aisql.StatusSuccess.String(), res.RequestID()); err != nil {
			return result, err
		}
	}
	return result, nil
}
