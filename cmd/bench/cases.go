// README: Benchmark cases for the plan API; includes HTTP, DB, Redis, concurrency and throughput checks.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"wanderlust/internal/infra"
	"wanderlust/migrations"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name  string
	Focus string
	Run   func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 2 * time.Minute},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name:  "Env: Postgres connect",
			Focus: "plan store reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "SKIP", Note: "dsn not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Env: Redis connect",
			Focus: "image cache reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: "SKIP", Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Migration: apply (optional)",
			Focus: "apply embedded migrations",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: "SKIP", Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				if err := infra.Migrate(ctx, r.db, migrations.FS); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Migration: tables exist",
			Focus: "every table in the embedded migrations exists",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "SKIP", Note: "db not configured"}
				}
				tables, err := extractTables(migrations.FS)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: "FAIL", Note: err.Error()}
					}
					if !exists {
						return Result{Status: "FAIL", Note: "missing table: " + t}
					}
				}
				return Result{Status: "PASS", Note: strings.Join(tables, ",")}
			},
		},

		httpCaseMethod("API: health", http.MethodGet, base+"/health", nil, []int{200}, nil),

		// Validation
		httpCase("Generate: empty prompt -> 400", base+"/api/generate-travel", map[string]any{"prompt": "  "}, []int{400}, nil),
		httpCase("Generate: invalid json -> 400", base+"/api/generate-travel", "{prompt", []int{400}, nil),

		// Read side
		httpCaseMethod("Search: all", http.MethodGet, base+"/api/generate-travel", nil, []int{200}, nil),
		httpCaseMethod("Search: destination+days", http.MethodGet, base+"/api/generate-travel?destination=par&days=3", nil, []int{200}, nil),
		httpCaseMethod("Search: non-integer days -> 400", http.MethodGet, base+"/api/generate-travel?days=three", nil, []int{400}, nil),
		httpCaseMethod("Plans: recent", http.MethodGet, base+"/api/plans/recent", nil, []int{200}, nil),
		httpCaseMethod("Plans: featured", http.MethodGet, base+"/api/plans/featured", nil, []int{200}, nil),
		httpCaseMethod("Plans: popular", http.MethodGet, base+"/api/plans/popular?limit=3", nil, []int{200}, nil),
		httpCaseMethod("Plans: unknown slug -> 404", http.MethodGet, base+"/api/plans/nowhere-tour-99-days", nil, []int{404}, nil),
		httpCase("Plans: share unknown slug -> 404", base+"/api/plans/nowhere-tour-99-days/share", nil, []int{404}, nil),

		// Generation (calls the model)
		{
			Name:  "Generate: non-travel prompt -> 400",
			Focus: "classification rejects unrelated prompts",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.Generate {
					return Result{Status: "SKIP", Note: "generate=false"}
				}
				status, _, latency, err := r.generate(ctx, "How do I fix a leaking kitchen sink?")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return statusResult(status, latency, []int{400}, nil)
			},
		},
		{
			Name:  "Generate: create then reuse",
			Focus: "second identical request returns the stored plan",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.Generate {
					return Result{Status: "SKIP", Note: "generate=false"}
				}
				return generateTwice(ctx, r)
			},
		},
		{
			Name:  "Concurrency: identical generation",
			Focus: "at most one insert per slug",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.Generate {
					return Result{Status: "SKIP", Note: "generate=false"}
				}
				return concurrentGenerate(ctx, r)
			},
		},
		{
			Name:  "Share: counter increments",
			Focus: "share count strictly increases",
			Run: func(ctx context.Context, r *Runner) Result {
				return shareTwice(ctx, r)
			},
		},

		// Error handling
		manualCase("Error: DB down -> 500", "stop the database and observe Failed to fetch travel plans"),
		manualCase("Error: image provider down -> fallback image", "revoke the image key and check imageUrl"),

		// Performance
		{
			Name:  "Perf: search throughput",
			Focus: "read path under load",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/generate-travel?destination=a")
			},
		},
		{
			Name:  "Perf: recent throughput",
			Focus: "read path under load",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/plans/recent")
			},
		},
	}
}

type generateResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Plan    struct {
		ID   string `json:"id"`
		Slug string `json:"slug"`
	} `json:"plan"`
}

func (r *Runner) generate(ctx context.Context, prompt string) (int, generateResp, time.Duration, error) {
	var out generateResp
	b, _ := json.Marshal(map[string]any{"prompt": prompt})
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.BaseURL+"/api/generate-travel", strings.NewReader(string(b)))
	req.Header.Set("Content-Type", "application/json")
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, out, 0, err
	}
	defer resp.Body.Close()
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out, time.Since(start), nil
}

func generateTwice(ctx context.Context, r *Runner) Result {
	status, first, _, err := r.generate(ctx, r.cfg.Prompt)
	if err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	if status != http.StatusOK {
		return Result{Status: "FAIL", Note: fmt.Sprintf("first status=%d error=%s", status, first.Error)}
	}
	status, second, latency, err := r.generate(ctx, r.cfg.Prompt)
	if err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	if status != http.StatusOK || second.Message != "Found existing travel plan" {
		return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("second status=%d message=%q", status, second.Message)}
	}
	if second.Plan.ID != first.Plan.ID {
		return Result{Status: "FAIL", Note: "different plan returned"}
	}
	return Result{Status: "PASS", Latency: latency, Note: "slug=" + first.Plan.Slug}
}

func concurrentGenerate(ctx context.Context, r *Runner) Result {
	wg := sync.WaitGroup{}
	mu := sync.Mutex{}
	created, reused, conflicts, other := 0, 0, 0, 0
	slugs := map[string]bool{}

	prompt := r.cfg.Prompt + " (concurrency)"
	n := r.cfg.Concurrency
	if n > 5 {
		n = 5
	}
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, out, _, err := r.generate(ctx, prompt)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				other++
			case status == http.StatusOK && out.Message == "Found existing travel plan":
				reused++
				slugs[out.Plan.Slug] = true
			case status == http.StatusOK:
				created++
				slugs[out.Plan.Slug] = true
			case status == http.StatusInternalServerError:
				conflicts++
			default:
				other++
			}
		}()
	}
	wg.Wait()

	note := fmt.Sprintf("created=%d reused=%d failed=%d other=%d", created, reused, conflicts, other)
	if len(slugs) > 1 {
		return Result{Status: "FAIL", Note: note + " slugs differ"}
	}
	if created+reused == 0 {
		return Result{Status: "FAIL", Note: note}
	}
	return Result{Status: "PASS", Note: note}
}

func shareTwice(ctx context.Context, r *Runner) Result {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.BaseURL+"/api/plans/recent?limit=1", nil)
	resp, err := r.httpc.Do(req)
	if err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	var list struct {
		Plans []struct {
			Slug string `json:"slug"`
		} `json:"plans"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&list)
	resp.Body.Close()
	if len(list.Plans) == 0 {
		return Result{Status: "SKIP", Note: "no stored plans"}
	}

	slug := list.Plans[0].Slug
	var counts []int
	for i := 0; i < 2; i++ {
		req, _ := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.BaseURL+"/api/plans/"+slug+"/share", nil)
		resp, err := r.httpc.Do(req)
		if err != nil {
			return Result{Status: "FAIL", Note: err.Error()}
		}
		var out struct {
			Shares int `json:"shares"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&out)
		resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			return Result{Status: "SKIP", Note: "latest plan is unpublished"}
		}
		counts = append(counts, out.Shares)
	}
	if counts[1] <= counts[0] {
		return Result{Status: "FAIL", Note: fmt.Sprintf("shares %v", counts)}
	}
	return Result{Status: "PASS", Note: fmt.Sprintf("shares %v", counts)}
}

func httpCase(name, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return httpCaseMethod(name, http.MethodPost, url, body, okStatuses, pendingStatuses)
}

func httpCaseMethod(name, method, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return TestCase{
		Name:  name,
		Focus: "HTTP API",
		Run: func(ctx context.Context, r *Runner) Result {
			var reader io.Reader
			switch b := body.(type) {
			case nil:
			case string:
				reader = strings.NewReader(b)
			default:
				raw, _ := json.Marshal(b)
				reader = strings.NewReader(string(raw))
			}
			req, _ := http.NewRequestWithContext(ctx, method, url, reader)
			req.Header.Set("Content-Type", "application/json")
			start := time.Now()
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: "FAIL", Note: err.Error()}
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return statusResult(resp.StatusCode, time.Since(start), okStatuses, pendingStatuses)
		},
	}
}

func statusResult(status int, latency time.Duration, okStatuses, pendingStatuses []int) Result {
	note := fmt.Sprintf("status=%d", status)
	if contains(okStatuses, status) {
		return Result{Status: "PASS", Latency: latency, Note: note}
	}
	if contains(pendingStatuses, status) {
		return Result{Status: "PENDING", Latency: latency, Note: note}
	}
	return Result{Status: "FAIL", Latency: latency, Note: note}
}

func manualCase(name, note string) TestCase {
	return TestCase{
		Name:  name,
		Focus: "Manual",
		Run: func(ctx context.Context, r *Runner) Result {
			return Result{Status: "SKIP", Note: note}
		},
	}
}

func perfLoad(ctx context.Context, r *Runner, url string) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count int64
	var errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
				resp, err := r.httpc.Do(req)
				if err != nil {
					mu.Lock()
					errCount++
					mu.Unlock()
					continue
				}
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				mu.Lock()
				count++
				if resp.StatusCode >= 500 {
					errCount++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: "FAIL", Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: "PASS", Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

func contains(list []int, v int) bool {
	for _, i := range list {
		if i == v {
			return true
		}
	}
	return false
}

var createTableRe = regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)

func extractTables(fsys fs.FS) ([]string, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, err
	}
	var tables []string
	for _, name := range names {
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		for _, m := range createTableRe.FindAllStringSubmatch(string(b), -1) {
			tables = append(tables, m[1])
		}
	}
	return tables, nil
}
