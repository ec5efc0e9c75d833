// seed_chart.go posts a sample chart to a running ValueCharts API.
//
// Usage:
//
//	go run scripts/seed_chart.go -api http://localhost:8700 -users Aaron,Bob
//	go run scripts/seed_chart.go -file chart.json
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/MikeSquared-Agency/ValueCharts/internal/model"
	"github.com/MikeSquared-Agency/ValueCharts/internal/model/modeltest"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8700", "ValueCharts API base URL")
	client := flag.String("client", "seed", "X-Client-ID header value")
	users := flag.String("users", "Aaron,Bob", "comma-separated hotel users to include (Aaron, Bob)")
	file := flag.String("file", "", "post this chart JSON instead of the hotel chart")
	dryRun := flag.Bool("dry-run", false, "print the chart without posting")
	flag.Parse()

	var chart *model.ValueChart
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			log.Fatalf("read %s: %v", *file, err)
		}
		chart = &model.ValueChart{}
		if err := json.Unmarshal(data, chart); err != nil {
			log.Fatalf("decode %s: %v", *file, err)
		}
	} else {
		var names []string
		for _, n := range strings.Split(*users, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
		chart = modeltest.HotelChart(names...)
	}

	if err := chart.Validate(); err != nil {
		log.Fatalf("invalid chart: %v", err)
	}

	body, err := json.MarshalIndent(chart, "", "  ")
	if err != nil {
		log.Fatalf("encode chart: %v", err)
	}

	if *dryRun {
		fmt.Println(string(body))
		return
	}

	req, err := http.NewRequest("POST", *apiURL+"/api/v1/charts", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-ID", *client)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("post chart: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(resp.Body)
		log.Fatalf("post chart: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		log.Fatalf("decode response: %v", err)
	}
	log.Printf("created chart %s (%s) with %d alternatives and %d users",
		created.ID, chart.Name, len(chart.Alternatives), len(chart.Users))
}
