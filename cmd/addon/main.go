package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/MuckRock/textract-table-extractor-add-on/internal/config"
	"github.com/MuckRock/textract-table-extractor-add-on/internal/workflows"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	enumspb "go.temporal.io/api/enums/v1"
	tclient "go.temporal.io/sdk/client"
)

// payload is the JSON document the platform hands an add-on run:
// the run id, the selected documents, and the user-supplied form data.
type payload struct {
	Token        string      `json:"token"`
	BaseURI      string      `json:"base_uri"`
	ID           string      `json:"id"`
	Documents    []int64     `json:"documents"`
	Query        string      `json:"query"`
	Data         payloadData `json:"data"`
	User         int64       `json:"user"`
	Organization int64       `json:"organization"`
}

type payloadData struct {
	OutputFormat string `json:"output_format"`
	StartPage    *int   `json:"start_page"`
	EndPage      *int   `json:"end_page"`
}

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()

	payloadPath := flag.String("payload", "", "path to a JSON payload file")
	flag.Parse()

	p, err := loadPayload(*payloadPath, flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	runID := p.ID
	if runID == "" {
		runID = uuid.NewString()
	}

	c, err := tclient.Dial(tclient.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	ctx := context.Background()
	we, err := c.ExecuteWorkflow(ctx, tclient.StartWorkflowOptions{
		ID:                    "table-extract-" + runID,
		TaskQueue:             cfg.TemporalTaskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
	}, workflows.TableExtractWorkflow, workflows.RunInput{
		RunID:        runID,
		DocumentIDs:  p.Documents,
		Organization: p.Organization,
		OutputFormat: p.Data.OutputFormat,
		StartPage:    pageOrDefault(p.Data.StartPage, 1),
		EndPage:      pageOrDefault(p.Data.EndPage, 1),
	})
	if err != nil {
		log.Fatal(err)
	}

	// Aborted runs come back with a nil error and print like any other
	// result, so the process still exits 0.
	var result workflows.RunResult
	if err := we.Get(ctx, &result); err != nil {
		log.Fatal(err)
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}

// loadPayload reads the run payload from -payload, the ADDON_PAYLOAD
// environment variable, or a raw JSON argument, in that order.
func loadPayload(path, arg string) (payload, error) {
	var raw []byte
	switch {
	case path != "":
		b, err := os.ReadFile(path)
		if err != nil {
			return payload{}, fmt.Errorf("read payload: %w", err)
		}
		raw = b
	case os.Getenv("ADDON_PAYLOAD") != "":
		raw = []byte(os.Getenv("ADDON_PAYLOAD"))
	case arg != "":
		raw = []byte(arg)
	default:
		return payload{}, fmt.Errorf("no payload: pass -payload, set ADDON_PAYLOAD, or give JSON as the first argument")
	}
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return payload{}, fmt.Errorf("parse payload: %w", err)
	}
	return p, nil
}

func pageOrDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
