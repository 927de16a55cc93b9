// Command predict evaluates a single prediction request without starting the
// service. The request is read from a file or stdin and the response, or the
// rejection, is printed as indented JSON.
//
// Usage:
//
//	go run ./cmd/predict -in request.json
//	echo '{"readings":[{"air":25,"dew":12}]}' | go run ./cmd/predict
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/couchcryptid/raincast-service/internal/domain"
)

func main() {
	in := flag.String("in", "", "path to a JSON request (default stdin)")
	flag.Parse()

	ok, err := run(*in, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	if !ok {
		os.Exit(1)
	}
}

// run reports false when the request was rejected. The returned error is
// reserved for I/O failures.
func run(path string, stdin io.Reader, stdout io.Writer) (bool, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return false, fmt.Errorf("read request: %w", err)
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")

	outcome, err := evaluate(data)
	if err != nil {
		return false, enc.Encode(domain.ErrorResponse{Error: err.Error()})
	}
	return true, enc.Encode(domain.NewResponse(outcome))
}

func evaluate(data []byte) (domain.PredictionOutcome, error) {
	req, err := domain.ParseRequest(data)
	if err != nil {
		return domain.PredictionOutcome{}, err
	}
	return domain.Evaluate(req)
}
