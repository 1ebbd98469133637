// Package source implements the outbound adapters that read the projects
// document: from a local file or over HTTP. Both share the same decoding
// pipeline: JSON Schema validation, DTO decoding, and translation into
// domain projects.
//
// A malformed document fails the whole load with a *domain.ValidationError;
// no partial project list is ever returned.
package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain/project"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/platform/config"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/platform/httpclient"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/ports"
)

// maxDocumentSize limits how much of a projects document is read.
const maxDocumentSize = 8 << 20 // 8 MB

// readDocument reads r up to maxDocumentSize. A longer document is rejected
// rather than truncated.
func readDocument(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDocumentSize {
		return nil, domain.NewValidationError(rootField, fmt.Sprintf("document exceeds %d MB limit", maxDocumentSize>>20))
	}
	return data, nil
}

// Decode validates and translates a raw projects document.
func Decode(data []byte) ([]project.Project, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	var doc documentDTO
	if err := dec.Decode(&doc); err != nil {
		return nil, domain.NewValidationError(rootField, fmt.Sprintf("decoding document: %v", err))
	}
	if doc.Projects == nil {
		return nil, domain.NewValidationError("projects", domain.MsgRequired)
	}

	return toDomainProjects(*doc.Projects)
}

// New builds the ProjectSource selected by cfg.Kind. The HTTP kind requires
// a non-nil client; the file kind ignores it.
func New(cfg config.SourceConfig, client *httpclient.Client, logger *slog.Logger) (ports.ProjectSource, error) {
	switch cfg.Kind {
	case config.SourceFile:
		return NewFileSource(cfg.Path, logger), nil
	case config.SourceHTTP:
		if client == nil {
			return nil, errors.New("http source requires an HTTP client")
		}
		return NewHTTPSource(client, cfg.URL, logger), nil
	default:
		return nil, fmt.Errorf("unsupported source kind %q", cfg.Kind)
	}
}
