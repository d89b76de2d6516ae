// Package csvdata loads the simulation datasets from CSV files: the scored
// post dataset, the per-symbol price files and the symbol directory. Rows
// that fail to parse are skipped with a diagnostic; one malformed record
// must never invalidate the rest of a dataset.
package csvdata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/alejandrodnm/crowdfolio/internal/domain"
	"github.com/alejandrodnm/crowdfolio/internal/sentiment"
	"github.com/gocarina/gocsv"
)

// scoredPostRecord mirrors one row of the scored posts CSV. Fields stay
// strings so a single bad cell poisons only its own row.
type scoredPostRecord struct {
	Symbol    string `csv:"stock"`
	Title     string `csv:"title"`
	Body      string `csv:"body"`
	Community string `csv:"subreddit"`
	Upvotes   string `csv:"score"`
	Date      string `csv:"date"`
	Sentiment string `csv:"sentiment_score"`
}

// LoadScoredPosts reads the scored post dataset. limit > 0 truncates the
// dataset to its first rows, the debug subset knob, passed explicitly
// instead of read from ambient flags.
func LoadScoredPosts(path string, limit int) ([]domain.ScoredPost, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvdata.LoadScoredPosts: %w", err)
	}
	defer f.Close()

	var records []*scoredPostRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("csvdata.LoadScoredPosts: parse %q: %w", path, err)
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	posts := make([]domain.ScoredPost, 0, len(records))
	skipped := 0
	for i, rec := range records {
		post, err := rec.toDomain()
		if err != nil {
			slog.Warn("csvdata: skipping malformed post row",
				"path", path, "row", i+1, "err", err)
			skipped++
			continue
		}
		posts = append(posts, post)
	}

	slog.Info("csvdata: scored posts loaded",
		"path", path, "posts", len(posts), "skipped", skipped)
	return posts, nil
}

func (r *scoredPostRecord) toDomain() (domain.ScoredPost, error) {
	if r.Symbol == "" || r.Community == "" {
		return domain.ScoredPost{}, fmt.Errorf("missing stock or subreddit")
	}

	// Timestamps sometimes survive upstream; keep only the calendar day.
	date, err := domain.ParseDate(strings.SplitN(strings.TrimSpace(r.Date), " ", 2)[0])
	if err != nil {
		return domain.ScoredPost{}, fmt.Errorf("date %q: %w", r.Date, err)
	}

	upvotes, err := strconv.ParseInt(strings.TrimSpace(r.Upvotes), 10, 64)
	if err != nil {
		return domain.ScoredPost{}, fmt.Errorf("score %q: %w", r.Upvotes, err)
	}
	if upvotes < 0 {
		return domain.ScoredPost{}, fmt.Errorf("negative score %d", upvotes)
	}

	score, err := parseSentimentPayload(r.Sentiment)
	if err != nil {
		return domain.ScoredPost{}, fmt.Errorf("sentiment_score %q: %w", r.Sentiment, err)
	}

	return domain.ScoredPost{
		Date:      date,
		Community: r.Community,
		Symbol:    r.Symbol,
		Sentiment: score,
		Upvotes:   upvotes,
	}, nil
}

// parseSentimentPayload decodes the sentiment distribution cell. The
// upstream scorer wrote Python dict literals ({'neg': 0.0, 'neu': 1.0,
// 'pos': 0.0}), so single quotes are normalized before decoding.
func parseSentimentPayload(s string) (domain.SentimentScore, error) {
	var payload struct {
		Pos float64 `json:"pos"`
		Neu float64 `json:"neu"`
		Neg float64 `json:"neg"`
	}
	normalized := strings.ReplaceAll(strings.TrimSpace(s), "'", `"`)
	if err := json.Unmarshal([]byte(normalized), &payload); err != nil {
		return domain.SentimentScore{}, err
	}
	if payload.Pos < 0 || payload.Neu < 0 || payload.Neg < 0 {
		return domain.SentimentScore{}, fmt.Errorf("negative component")
	}
	sum := payload.Pos + payload.Neu + payload.Neg
	if sum < 0.99 || sum > 1.01 {
		return domain.SentimentScore{}, fmt.Errorf("components sum to %g, want 1.0", sum)
	}
	return domain.SentimentScore{
		Positive: payload.Pos,
		Neutral:  payload.Neu,
		Negative: payload.Neg,
	}, nil
}

// WriteScoredPosts writes posts back out in the same CSV shape the loader
// reads, so a scoring run feeds directly into a simulation run.
func WriteScoredPosts(path string, posts []domain.ScoredPost) error {
	records := make([]*scoredPostRecord, 0, len(posts))
	for _, p := range posts {
		records = append(records, &scoredPostRecord{
			Symbol:    p.Symbol,
			Community: p.Community,
			Upvotes:   strconv.FormatInt(p.Upvotes, 10),
			Date:      p.Date.Format(domain.DateLayout),
			Sentiment: fmt.Sprintf("{'neg': %g, 'neu': %g, 'pos': %g}",
				p.Sentiment.Negative, p.Sentiment.Neutral, p.Sentiment.Positive),
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csvdata.WriteScoredPosts: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&records, f); err != nil {
		return fmt.Errorf("csvdata.WriteScoredPosts: write %q: %w", path, err)
	}
	return nil
}

// rawPostRecord mirrors one row of the raw (unscored) community post dump.
type rawPostRecord struct {
	Title     string `csv:"title"`
	Body      string `csv:"body"`
	Community string `csv:"subreddit"`
	Upvotes   string `csv:"score"`
	Date      string `csv:"date"`
}

// LoadRawPosts reads the raw post dump for the scoring pipeline.
func LoadRawPosts(path string, limit int) ([]sentiment.Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvdata.LoadRawPosts: %w", err)
	}
	defer f.Close()

	var records []*rawPostRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("csvdata.LoadRawPosts: parse %q: %w", path, err)
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	posts := make([]sentiment.Post, 0, len(records))
	for i, rec := range records {
		date, err := domain.ParseDate(strings.SplitN(strings.TrimSpace(rec.Date), " ", 2)[0])
		if err != nil {
			slog.Warn("csvdata: skipping raw post with bad date",
				"path", path, "row", i+1, "date", rec.Date)
			continue
		}
		upvotes, err := strconv.ParseInt(strings.TrimSpace(rec.Upvotes), 10, 64)
		if err != nil || upvotes < 0 {
			slog.Warn("csvdata: skipping raw post with bad score",
				"path", path, "row", i+1, "score", rec.Upvotes)
			continue
		}
		posts = append(posts, sentiment.Post{
			Title:     rec.Title,
			Body:      rec.Body,
			Community: rec.Community,
			Upvotes:   upvotes,
			Date:      date,
		})
	}
	return posts, nil
}

// ScoredPostsFile implements ports.PostSource from a CSV file on disk.
type ScoredPostsFile struct {
	Path  string
	Limit int
}

// ScoredPosts loads the dataset.
func (s ScoredPostsFile) ScoredPosts(ctx context.Context) ([]domain.ScoredPost, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadScoredPosts(s.Path, s.Limit)
}
