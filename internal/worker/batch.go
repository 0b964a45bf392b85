package worker

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/satya/internal/model"
	"github.com/ppiankov/satya/internal/pipeline"
)

// Verifier runs one verification
type Verifier interface {
	Run(ctx context.Context, input model.ContentInput) (*pipeline.Result, error)
}

// VerifyJob verifies one batch line
type VerifyJob struct {
	Index    int
	Input    model.ContentInput
	Verifier Verifier
}

// Execute runs the verification
func (j *VerifyJob) Execute(ctx context.Context) Result {
	result, err := j.Verifier.Run(ctx, j.Input)
	return &VerifyResult{
		Index:  j.Index,
		Input:  j.Input,
		Result: result,
		Error:  err,
	}
}

// VerifyResult is the outcome of one batch line
type VerifyResult struct {
	Index  int
	Input  model.ContentInput
	Result *pipeline.Result // nil on error
	Error  error
}

// GetError returns the verification error
func (r *VerifyResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies many inputs concurrently
type BatchProcessor struct {
	verifier    Verifier
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(verifier Verifier, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		verifier:    verifier,
		concurrency: concurrency,
	}
}

// Process verifies inputs and returns results in input order
func (b *BatchProcessor) Process(ctx context.Context, inputs []model.ContentInput) []*VerifyResult {
	if len(inputs) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	go func() {
		for i, input := range inputs {
			if !pool.Submit(&VerifyJob{Index: i, Input: input, Verifier: b.verifier}) {
				break
			}
		}
	}()

	results := make([]*VerifyResult, len(inputs))
	received := 0
collect:
	for received < len(inputs) {
		select {
		case r := <-pool.Results():
			vr := r.(*VerifyResult)
			results[vr.Index] = vr
			received++
		case <-ctx.Done():
			break collect
		}
	}
	pool.Shutdown()

	// Lines never reached before cancellation still get an outcome
	for i, r := range results {
		if r == nil {
			results[i] = &VerifyResult{
				Index: i,
				Input: inputs[i],
				Error: model.EngineUnavailable("request cancelled", ctx.Err()),
			}
		}
	}
	return results
}

// ProcessFile reads inputs from a file and verifies them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*VerifyResult, error) {
	inputs, err := ReadInputsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read inputs: %w", err)
	}

	return b.Process(ctx, inputs), nil
}

// ReadInputsFromFile reads one claim or URL per line
func ReadInputsFromFile(filePath string) ([]model.ContentInput, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ReadInputs(file)
}

// ReadInputs parses batch lines. Blank lines and # comments are skipped,
// duplicates are dropped, and lines starting with http:// or https:// are URLs.
func ReadInputs(r io.Reader) ([]model.ContentInput, error) {
	var inputs []model.ContentInput
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true

		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
			inputs = append(inputs, model.URLInput(line))
		} else {
			inputs = append(inputs, model.TextInput(line))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return inputs, nil
}
