package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	flag "github.com/spf13/pflag"
)

type options struct {
	baseURL  string
	workers  int
	duration time.Duration
	clients  int
	username string
	password string
}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

var situations = []string{"Emergência", "Violência doméstica", "Perseguição", "Assédio"}

func main() {
	opts := options{}
	flag.StringVar(&opts.baseURL, "url", "http://127.0.0.1:8080", "server base URL")
	flag.IntVarP(&opts.workers, "workers", "w", 50, "concurrent workers")
	flag.DurationVarP(&opts.duration, "duration", "t", 10*time.Second, "duration of each phase")
	flag.IntVar(&opts.clients, "clients", 500, "distinct simulated client addresses")
	flag.StringVar(&opts.username, "user", "admin", "admin username for authenticated reads")
	flag.StringVar(&opts.password, "password", "admin123", "admin password")
	flag.Parse()

	fmt.Println("=== Aurora Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Clients: %d\n\n", opts.workers, opts.duration, opts.clients)

	fmt.Print("Waiting for server... ")
	if !waitReady(opts.baseURL) {
		fmt.Println("FAILED: server not responding")
		os.Exit(1)
	}
	fmt.Println("OK")

	token, err := login(opts)
	if err != nil {
		fmt.Printf("Login failed, skipping authenticated reads: %s\n", err)
	}

	fmt.Println("\n--- Phase 1: Alerts (POST /api/send_alert) ---")
	runPhase(opts, func(rng *rand.Rand) result {
		return doSendAlert(opts, rng)
	})

	fmt.Println("\n--- Phase 2: Mixed load (40% alerts, 60% reads) ---")
	runPhase(opts, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.40:
			return doSendAlert(opts, rng)
		case r < 0.60 && token != "":
			return doGet(opts.baseURL, "/api/last_alert", token)
		case r < 0.75 && token != "":
			return doGet(opts.baseURL, "/api/recent_alerts?n=20", token)
		case r < 0.90:
			return doGet(opts.baseURL, "/api/trusted", "")
		default:
			return doGet(opts.baseURL, "/api/backend", "")
		}
	})
}

func waitReady(baseURL string) bool {
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			return true
		}
		time.Sleep(200 * time.Millisecond)
	}
	return false
}

func login(opts options) (string, error) {
	data, _ := json.Marshal(map[string]any{
		"role":     "admin",
		"username": opts.username,
		"password": opts.password,
		"bearer":   true,
	})
	resp, err := httpClient.Post(opts.baseURL+"/api/login", "application/json", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.Token, nil
}

func runPhase(opts options, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < opts.workers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
				}
			}
		}(rand.Int63() + int64(i))
	}

	all := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := all[r.endpoint]
			if !ok {
				s = &stats{}
				all[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(opts.duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(all, opts.duration)
}

func printResults(all map[string]*stats, duration time.Duration) {
	var totalOps, totalErrors int64

	endpoints := make([]string, 0, len(all))
	for ep := range all {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-28s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 94))

	for _, ep := range endpoints {
		s := all[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-28s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		return
	}
	fmt.Println("  " + strings.Repeat("-", 94))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
}

// doSendAlert posts from one of opts.clients forwarded addresses. A 429 is
// the cooldown doing its job and is not counted as an error.
func doSendAlert(opts options, rng *rand.Rand) result {
	body := map[string]interface{}{
		"name":      "Carga " + uuid.NewString()[:8],
		"situation": situations[rng.Intn(len(situations))],
		"message":   "teste de carga",
	}
	if rng.Float64() < 0.7 {
		body["location"] = map[string]float64{
			"lat":      -23.5 + rng.Float64(),
			"lon":      -46.6 + rng.Float64(),
			"accuracy": float64(rng.Intn(100) + 5),
		}
	}
	data, _ := json.Marshal(body)

	req, err := http.NewRequest(http.MethodPost, opts.baseURL+"/api/send_alert", bytes.NewReader(data))
	if err != nil {
		return result{endpoint: "POST /api/send_alert", err: true}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.%d.%d.%d", rng.Intn(4), rng.Intn(250), rng.Intn(opts.clients)%250+1))

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{"POST /api/send_alert", 0, lat, true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	ok := resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusTooManyRequests
	return result{"POST /api/send_alert", resp.StatusCode, lat, !ok}
}

func doGet(baseURL, path, token string) result {
	endpoint := "GET " + strings.SplitN(path, "?", 2)[0]
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		return result{endpoint: endpoint, err: true}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
