// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jeranaias/deepthink/internal/config"
	"github.com/jeranaias/deepthink/internal/ollama"
)

// StatusChecker is the part of the Ollama client the status command uses.
type StatusChecker interface {
	CheckRunning(ctx context.Context) error
	ListModels(ctx context.Context) ([]ollama.ModelInfo, error)
}

// StatusReport is the status command's output.
type StatusReport struct {
	Version       string   `json:"version"`
	OllamaURL     string   `json:"ollama_url"`
	OllamaRunning bool     `json:"ollama_running"`
	OllamaError   string   `json:"ollama_error,omitempty"`
	Model         string   `json:"model"`
	ModelFound    bool     `json:"model_installed"`
	Models        []string `json:"models"`
	Temperature   float64  `json:"temperature"`
	Theme         string   `json:"theme"`
	WebAddr       string   `json:"web_addr"`
}

// CollectStatus queries Ollama and summarizes cfg.
func CollectStatus(ctx context.Context, cfg *config.Config, checker StatusChecker) StatusReport {
	report := StatusReport{
		Version:     Version,
		OllamaURL:   cfg.Ollama.URL,
		Model:       cfg.Chat.Model,
		Models:      []string{},
		Temperature: cfg.Chat.Temperature,
		Theme:       cfg.UI.Theme,
		WebAddr:     cfg.Addr(),
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := checker.CheckRunning(ctx); err != nil {
		report.OllamaError = err.Error()
		return report
	}
	report.OllamaRunning = true

	models, err := checker.ListModels(ctx)
	if err != nil {
		report.OllamaError = err.Error()
		return report
	}
	for _, m := range models {
		report.Models = append(report.Models, m.Name)
		if m.Name == cfg.Chat.Model {
			report.ModelFound = true
		}
	}
	return report
}

// HandleStatus prints the status report to w.
func HandleStatus(ctx context.Context, w io.Writer, cfg *config.Config, checker StatusChecker, args Args) error {
	report := CollectStatus(ctx, cfg, checker)
	if args.JSON {
		return outputJSON(w, report)
	}

	fmt.Fprintln(w, TitleStyle.Render("DeepThink Status"))
	fmt.Fprintln(w, RenderSeparator())

	ollamaState := SuccessStyle.Render("running")
	if !report.OllamaRunning {
		ollamaState = ErrorStyle.Render("not reachable")
	}
	fmt.Fprintln(w, RenderField("Ollama:", ollamaState+" ("+report.OllamaURL+")"))

	modelState := report.Model
	switch {
	case !report.OllamaRunning:
	case report.ModelFound:
		modelState += " " + SuccessStyle.Render("installed")
	default:
		modelState += " " + WarningStyle.Render("not installed (ollama pull "+report.Model+")")
	}
	fmt.Fprintln(w, RenderField("Model:", modelState))
	fmt.Fprintln(w, RenderField("Temperature:", fmt.Sprintf("%.2f", report.Temperature)))
	fmt.Fprintln(w, RenderField("Theme:", report.Theme))
	fmt.Fprintln(w, RenderField("Web:", "http://"+report.WebAddr))

	if len(report.Models) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, TitleStyle.Render("Installed Models"))
		for _, name := range report.Models {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if report.OllamaError != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, DimStyle.Render(report.OllamaError))
	}
	return nil
}
