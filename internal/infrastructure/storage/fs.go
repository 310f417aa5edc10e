package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"svw.info/seatplan/internal/domain"
)

// ErrInvalidRun is returned for runs that cannot be keyed.
var ErrInvalidRun = errors.New("invalid run: missing or malformed ID")

// FS keeps one JSON file per run under dir/<strategy>/<id>.json.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

var strategies = []domain.Strategy{domain.StrategyExhaustive, domain.StrategyPriority, domain.StrategyNaive}

func (s *FS) pathFor(id string, st domain.Strategy) string {
	return filepath.Join(s.dir, st.String(), strings.TrimSpace(id)+".json")
}

func checkID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidRun, id)
	}
	return nil
}

func (s *FS) Save(ctx context.Context, r *domain.Run) error {
	if r == nil {
		return ErrInvalidRun
	}
	if err := checkID(r.ID); err != nil {
		return err
	}
	target := s.pathFor(r.ID, r.Strategy)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func (s *FS) Load(ctx context.Context, id string) (*domain.Run, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	for _, st := range strategies {
		data, err := os.ReadFile(s.pathFor(id, st))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var out domain.Run
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("decode run %s: %w", id, err)
		}
		// the folder is authoritative for hand-edited files
		out.Strategy = st
		return &out, nil
	}
	return nil, fmt.Errorf("run %s: %w", id, domain.ErrNotFound)
}

func (s *FS) List(ctx context.Context) ([]domain.RunMeta, error) {
	type m struct {
		ID        string `json:"id"`
		Name      string `json:"name,omitempty"`
		Seated    int    `json:"seated"`
		CreatedAt int64  `json:"createdAt"`
	}

	var out []domain.RunMeta
	for _, st := range strategies {
		dir := filepath.Join(s.dir, st.String())
		ents, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range ents {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				continue
			}
			var mm m
			if err := json.Unmarshal(data, &mm); err != nil || mm.ID == "" {
				continue
			}
			out = append(out, domain.RunMeta{
				ID:        mm.ID,
				Name:      mm.Name,
				Strategy:  st,
				Seated:    mm.Seated,
				CreatedAt: mm.CreatedAt,
			})
		}
	}
	sortMeta(out)
	return out, nil
}

func (s *FS) Close() error { return nil }

// sortMeta orders newest first, then by id.
func sortMeta(ms []domain.RunMeta) {
	slices.SortFunc(ms, func(a, b domain.RunMeta) int {
		if a.CreatedAt != b.CreatedAt {
			if a.CreatedAt > b.CreatedAt {
				return -1
			}
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})
}
