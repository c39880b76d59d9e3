package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
)

// HistoryIndex stores past analyses in a vector collection keyed by analysis
// id, so analyses of similar job descriptions can be found later.
type HistoryIndex interface {
	InitCollection(ctx context.Context) error
	IndexAnalysis(ctx context.Context, entry IndexedAnalysis, embedding []float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]SimilarAnalysis, error)
	DeleteAnalysis(ctx context.Context, analysisID string) error
	ListAnalysisIDs(ctx context.Context) ([]string, error)
}

// scrollPageSize is the number of points fetched per scroll request.
const scrollPageSize = 256

// IndexedAnalysis is the payload stored with each vector.
type IndexedAnalysis struct {
	AnalysisID   string
	JobTitle     string
	MatchPercent float64
}

type SimilarAnalysis struct {
	AnalysisID   string
	Score        float32
	JobTitle     string
	MatchPercent float64
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
	log            *zap.Logger
}

func NewQdrantService(urlStr, apiKey, collectionName string, vectorSize uint64, log *zap.Logger) (HistoryIndex, error) {
	host, port, useTLS, err := parseQdrantURL(urlStr)
	if err != nil {
		return nil, err
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     vectorSize,
		log:            logger.Component(log, "qdrant"),
	}, nil
}

// parseQdrantURL extracts host, gRPC port and TLS usage. Without an explicit
// port the gRPC default 6334 is used.
func parseQdrantURL(urlStr string) (string, int, bool, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return "", 0, false, fmt.Errorf("invalid Qdrant URL: %w", err)
	}
	if parsed.Hostname() == "" {
		return "", 0, false, fmt.Errorf("invalid Qdrant URL: missing host in %q", urlStr)
	}

	port := 6334
	if p := parsed.Port(); p != "" {
		v, err := strconv.Atoi(p)
		if err != nil {
			return "", 0, false, fmt.Errorf("invalid Qdrant port %q: %w", p, err)
		}
		port = v
	}

	return parsed.Hostname(), port, parsed.Scheme == "https", nil
}

// InitCollection implements HistoryIndex.
func (q *qdrantService) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		q.log.Debug("collection already exists", zap.String("collection", q.collectionName))
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	q.log.Info("collection created", zap.String("collection", q.collectionName))
	return nil
}

// IndexAnalysis implements HistoryIndex. Re-indexing an analysis replaces its
// point.
func (q *qdrantService) IndexAnalysis(ctx context.Context, entry IndexedAnalysis, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(entry.AnalysisID),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"analysis_id":   entry.AnalysisID,
			"job_title":     entry.JobTitle,
			"match_percent": entry.MatchPercent,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSimilar implements HistoryIndex.
func (q *qdrantService) SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]SimilarAnalysis, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	results := make([]SimilarAnalysis, 0, len(points))
	for _, point := range points {
		payload := point.GetPayload()
		results = append(results, SimilarAnalysis{
			AnalysisID:   payload["analysis_id"].GetStringValue(),
			JobTitle:     payload["job_title"].GetStringValue(),
			MatchPercent: payload["match_percent"].GetDoubleValue(),
			Score:        point.GetScore(),
		})
	}

	return results, nil
}

// DeleteAnalysis implements HistoryIndex.
func (q *qdrantService) DeleteAnalysis(ctx context.Context, analysisID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("analysis_id", analysisID),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}

	return nil
}

// ListAnalysisIDs implements HistoryIndex. It pages through the whole
// collection.
func (q *qdrantService) ListAnalysisIDs(ctx context.Context) ([]string, error) {
	var (
		ids    []string
		offset *qdrant.PointId
	)
	for {
		points, next, err := q.client.ScrollAndOffset(ctx, &qdrant.ScrollPoints{
			CollectionName: q.collectionName,
			Offset:         offset,
			Limit:          qdrant.PtrOf(uint32(scrollPageSize)),
			WithPayload:    qdrant.NewWithPayloadInclude("analysis_id"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scroll points: %w", err)
		}

		for _, point := range points {
			ids = append(ids, point.GetPayload()["analysis_id"].GetStringValue())
		}

		if next == nil || len(points) == 0 {
			return ids, nil
		}
		offset = next
	}
}
