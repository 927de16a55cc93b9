// Command genmock generates the prediction request fixture shared by the
// pipeline and integration test suites. Valid requests are drawn from a seeded
// generator within the accepted bounds; each case is run through the domain
// package so the expected rejection kind matches real behavior.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/prediction_requests.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/raincast-service/internal/domain"
)

type mockRequest struct {
	Key          string         `json:"key"`
	Request      domain.Request `json:"request"`
	ExpectedKind string         `json:"expected_kind"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "data/mock/prediction_requests.json", "output path for the request fixture")
	valid := flag.Int("valid", 30, "number of valid requests to generate")
	seed := flag.Uint64("seed", 426, "generator seed")
	flag.Parse()

	cases := buildCases(*valid, *seed)
	kinds := map[string]int{}
	for _, c := range cases {
		kinds[c.ExpectedKind]++
	}

	if err := writeJSON(*out, cases); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote %d requests to %s", len(cases), *out)
	for kind, n := range kinds {
		if kind == "" {
			kind = "valid"
		}
		log.Printf("  %-20s %d", kind, n)
	}
	return nil
}

// buildCases returns the seeded valid requests followed by the invalid ones,
// each labelled with the kind domain.Evaluate rejects it with.
func buildCases(valid int, seed uint64) []mockRequest {
	cases := generateValid(valid, seed)
	cases = append(cases, invalidCases()...)
	for i := range cases {
		if _, err := domain.Evaluate(cases[i].Request); err != nil {
			cases[i].ExpectedKind = domain.ErrorKind(err)
		}
	}
	return cases
}

func encode(cases []mockRequest) ([]byte, error) {
	data, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// generateValid draws n requests whose readings all sit inside the accepted
// bounds. Odd readings are encoded as strings, as a form would submit them,
// and every fifth request declares its count.
func generateValid(n int, seed uint64) []mockRequest {
	rng := rand.New(rand.NewPCG(seed, seed))
	cases := make([]mockRequest, 0, n)
	for i := range n {
		size := domain.MinReadings + rng.IntN(domain.MaxReadings-domain.MinReadings+1)
		readings := make([]domain.RawReading, size)
		for j := range readings {
			// The conversions keep the compiler from fusing into an FMA, so the
			// draws are identical on every architecture.
			air := round1(domain.MinAirTemp + float64(rng.Float64()*(domain.MaxAirTemp-domain.MinAirTemp)))
			dew := round1(domain.MinDewPoint + float64(rng.Float64()*(domain.MaxDewPoint-domain.MinDewPoint)))
			if j%2 == 1 {
				readings[j] = domain.RawReading{Air: textOf(air), Dew: textOf(dew)}
			} else {
				readings[j] = domain.RawReading{Air: domain.Number(air), Dew: domain.Number(dew)}
			}
		}
		req := domain.Request{Readings: readings}
		if i%5 == 0 {
			req.Count = domain.Number(float64(size))
		}
		cases = append(cases, mockRequest{Key: fmt.Sprintf("req-%03d", i), Request: req})
	}
	return cases
}

func invalidCases() []mockRequest {
	ok := domain.RawReading{Air: domain.Number(25), Dew: domain.Number(10)}
	eleven := make([]domain.RawReading, domain.MaxReadings+1)
	for i := range eleven {
		eleven[i] = ok
	}

	reqs := []domain.Request{
		{Readings: []domain.RawReading{}},
		{Count: domain.Text("0"), Readings: []domain.RawReading{}},
		{Readings: eleven},
		{Count: domain.Number(3), Readings: []domain.RawReading{ok}},
		{Readings: []domain.RawReading{ok, {Air: domain.Text(""), Dew: domain.Number(10)}}},
		{Readings: []domain.RawReading{{Air: domain.Number(25)}}},
		{Readings: []domain.RawReading{{Air: domain.Number(22.999), Dew: domain.Number(10)}}},
		{Readings: []domain.RawReading{{Air: domain.Number(25), Dew: domain.Text("16.001")}}},
		{Readings: []domain.RawReading{{Air: domain.Text("hot"), Dew: domain.Number(10)}}},
	}

	cases := make([]mockRequest, len(reqs))
	for i, req := range reqs {
		cases[i] = mockRequest{Key: fmt.Sprintf("bad-%03d", i), Request: req}
	}
	return cases
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func textOf(v float64) domain.RawValue {
	return domain.Text(strconv.FormatFloat(v, 'f', 1, 64))
}

func writeJSON(path string, cases []mockRequest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := encode(cases)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
