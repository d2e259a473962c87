package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"wardrobe/internal/config"
	"wardrobe/internal/repositories"
	"wardrobe/internal/storage"
)

type documentReport struct {
	Document   string   `json:"document"`
	Partitions int      `json:"partitions"`
	Records    int      `json:"records"`
	Corrupt    bool     `json:"corrupt"`
	Problems   []string `json:"problems,omitempty"`
}

func (r documentReport) healthy() bool {
	return !r.Corrupt && len(r.Problems) == 0
}

// checkStore loads each document and counts what it holds. Users are flat
// (id → user); items and outfits are partitioned by user id.
func checkStore(store storage.Backend, cfg *config.Config) ([]documentReport, error) {
	names := []string{repositories.UsersDocument, repositories.ItemsDocument, repositories.OutfitsDocument}
	reports := make([]documentReport, 0, len(names))

	for _, name := range names {
		r := documentReport{Document: name}
		doc, err := store.Load(name)
		if errors.Is(err, storage.ErrNotObject) {
			r.Problems = append(r.Problems, err.Error())
			reports = append(reports, r)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", name, err)
		}

		if name == repositories.UsersDocument {
			r.Records = len(doc)
		} else {
			r.Partitions = len(doc)
			_ = doc.Scan(func(userID string, raw json.RawMessage) error {
				var partition map[string]json.RawMessage
				if err := json.Unmarshal(raw, &partition); err != nil {
					r.Problems = append(r.Problems, fmt.Sprintf("partition %s is not an object", userID))
					return nil
				}
				r.Records += len(partition)
				return nil
			})
		}

		if len(doc) == 0 && (cfg.StoreBackend == "json" || cfg.StoreBackend == "") {
			r.Corrupt = loadedEmptyFromData(storage.DocumentPath(cfg.DataDir, name))
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// loadedEmptyFromData reports whether path holds something other than an empty
// document, which means the json backend discarded it as unparseable.
func loadedEmptyFromData(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	data = bytes.TrimSpace(data)
	return len(data) > 0 && !bytes.Equal(data, []byte("{}")) && !bytes.Equal(data, []byte("null"))
}

func printReports(w io.Writer, reports []documentReport, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DOCUMENT\tPARTITIONS\tRECORDS\tSTATUS")
	for _, r := range reports {
		status := "ok"
		switch {
		case r.Corrupt:
			status = "corrupt (loaded as empty)"
		case len(r.Problems) > 0:
			status = fmt.Sprintf("%d problem(s)", len(r.Problems))
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", r.Document, r.Partitions, r.Records, status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, r := range reports {
		for _, p := range r.Problems {
			fmt.Fprintf(w, "%s: %s\n", r.Document, p)
		}
	}
	return nil
}
