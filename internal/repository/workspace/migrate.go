package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/kailas-cloud/socratic/internal/domain"
)

const (
	maxTopicLength = 30
	jsonExt        = ".json"
	kanbanSuffix   = "_kanban.json"
)

// MovedSession records a flat session file moved into a project directory.
type MovedSession struct {
	Session string
	Project string
	Kanban  bool
}

// FailedSession records a session that could not be migrated.
type FailedSession struct {
	Session string
	Err     error
}

// MigrationReport lists what happened to one user's flat files.
type MigrationReport struct {
	User    string
	Moved   []MovedSession
	Failed  []FailedSession
	Orphans []string // kanban files without a matching session
	Other   []string // files starting with "_"
}

// Migrate moves flat <root>/<user>/<session>.json conversations into
// <root>/<user>/<topic>/conversation.json. Per-session failures are reported, never fatal.
// With dryRun set, nothing is moved.
func (s *Store) Migrate(ctx context.Context, dryRun bool) ([]MigrationReport, error) {
	users, err := os.ReadDir(s.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var reports []MigrationReport
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return reports, fmt.Errorf("migrate: %w", err)
		}
		if !u.IsDir() {
			continue
		}
		report, err := s.migrateUser(u.Name(), dryRun)
		if err != nil {
			return reports, err
		}
		if len(report.Moved)+len(report.Failed)+len(report.Orphans)+len(report.Other) > 0 {
			reports = append(reports, report)
		}
	}
	return reports, nil
}

func (s *Store) migrateUser(user string, dryRun bool) (MigrationReport, error) {
	report := MigrationReport{User: user}
	userDir := filepath.Join(s.root, user)

	entries, err := os.ReadDir(userDir)
	if err != nil {
		return report, fmt.Errorf("list %s: %w", user, err)
	}

	sessions := map[string]string{}
	kanbans := map[string]string{}
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || filepath.Ext(name) != jsonExt {
			continue
		}
		path := filepath.Join(userDir, name)
		switch {
		case strings.HasSuffix(name, kanbanSuffix):
			kanbans[strings.TrimSuffix(name, kanbanSuffix)] = path
		case strings.HasPrefix(name, "_"):
			report.Other = append(report.Other, name)
		default:
			sessions[strings.TrimSuffix(name, jsonExt)] = path
		}
	}

	ids := make([]string, 0, len(sessions))
	for id := range sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		kanban, hasKanban := kanbans[id]
		project, err := s.migrateSession(userDir, id, sessions[id], kanban, dryRun)
		if err != nil {
			s.logger.Warn("Session migration failed",
				zap.String("user", user), zap.String("session", id), zap.Error(err))
			report.Failed = append(report.Failed, FailedSession{Session: id, Err: err})
			continue
		}
		report.Moved = append(report.Moved, MovedSession{Session: id, Project: project, Kanban: hasKanban})
	}

	for id, path := range kanbans {
		if _, ok := sessions[id]; !ok {
			report.Orphans = append(report.Orphans, filepath.Base(path))
		}
	}
	sort.Strings(report.Orphans)

	return report, nil
}

func (s *Store) migrateSession(userDir, id, convPath, kanbanPath string, dryRun bool) (string, error) {
	data, err := os.ReadFile(convPath)
	if err != nil {
		return "", fmt.Errorf("read session: %w", err)
	}
	var rec legacyRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return "", fmt.Errorf("decode session: %w", err)
	}

	project := SafeTopic(rec.Topic, id)
	if err := ValidateName(project); err != nil {
		return "", err
	}

	projDir := filepath.Join(userDir, project)
	target := filepath.Join(projDir, legacyFile)
	if _, err := os.Stat(target); err == nil {
		return "", fmt.Errorf("%s: %w", target, domain.ErrAlreadyExists)
	}
	if dryRun {
		return project, nil
	}

	if err := os.MkdirAll(projDir, 0o755); err != nil {
		return "", fmt.Errorf("create project dir: %w", err)
	}
	if err := os.Rename(convPath, target); err != nil {
		return "", fmt.Errorf("move session: %w", err)
	}
	if kanbanPath != "" {
		if err := os.Rename(kanbanPath, filepath.Join(projDir, kanbanFile)); err != nil {
			return "", fmt.Errorf("move kanban: %w", err)
		}
	}
	return project, nil
}

// SafeTopic turns a conversation topic into a project name: the first 30 characters,
// restricted to letters, digits, spaces, '-' and '_', trimmed. It falls back to
// fallback when nothing usable remains or the result is not a valid name.
func SafeTopic(topic, fallback string) string {
	runes := []rune(topic)
	if len(runes) > maxTopicLength {
		runes = runes[:maxTopicLength]
	}

	var b strings.Builder
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == ' ' {
			b.WriteRune(r)
		}
	}

	safe := strings.TrimSpace(b.String())
	if safe == "" || ValidateName(safe) != nil {
		return fallback
	}
	return safe
}
