package cmd

import (
	"encoding/json"
	"time"

	"github.com/marcus/p75/internal/db"
	"github.com/marcus/p75/internal/output"
	"github.com/spf13/cobra"
)

type exportDoc struct {
	Version       string                     `json:"version"`
	SchemaVersion int                        `json:"schemaVersion"`
	ExportedAt    time.Time                  `json:"exportedAt"`
	Data          map[string]json.RawMessage `json:"data"`
	UpdatedAt     map[string]time.Time       `json:"updatedAt"`
}

var exportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Dump every stored aggregate as JSON",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(getBaseDir())
		if err != nil {
			return fail(true, err)
		}
		defer database.Close()

		doc, err := buildExport(database)
		if err != nil {
			return fail(true, err)
		}
		return output.JSON(doc)
	},
}

func buildExport(database *db.DB) (exportDoc, error) {
	entries, err := database.Entries()
	if err != nil {
		return exportDoc{}, err
	}
	schema, err := database.GetSchemaVersion()
	if err != nil {
		return exportDoc{}, err
	}

	doc := exportDoc{
		Version:       version,
		SchemaVersion: schema,
		ExportedAt:    time.Now().UTC(),
		Data:          make(map[string]json.RawMessage, len(entries)),
		UpdatedAt:     make(map[string]time.Time, len(entries)),
	}
	for _, e := range entries {
		doc.Data[e.Key] = e.Value
		doc.UpdatedAt[e.Key] = e.UpdatedAt
	}
	return doc, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
