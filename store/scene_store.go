package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/pipes/analysis"
	"github.com/lixenwraith/pipes/pipe"
)

// ErrSceneNotFound is returned when no scene has the requested id
var ErrSceneNotFound = errors.New("scene not found")

// Scene is an archived generation: the seed and config that reproduce it, plus a summary
type Scene struct {
	SceneID     string          `json:"scene_id"`
	Seed        int64           `json:"seed"`
	ConfigJSON  json.RawMessage `json:"config_json"`
	Pipes       int             `json:"pipes"`
	Steps       int             `json:"steps"`
	Blocked     int             `json:"blocked"`
	Saturated   bool            `json:"saturated"`
	FillRatio   float64         `json:"fill_ratio"`
	Description string          `json:"description,omitempty"`
	CreatedAtNs int64           `json:"created_at_ns"`
}

// SceneStore provides persistence for generated scenes
type SceneStore struct {
	db *sql.DB
}

// NewSceneStore creates a new SceneStore
func NewSceneStore(db *sql.DB) *SceneStore {
	return &SceneStore{db: db}
}

// InsertScene stores a scene.
// If scene.SceneID is empty, a new UUID is generated.
func (s *SceneStore) InsertScene(scene *Scene) error {
	if scene.SceneID == "" {
		scene.SceneID = uuid.New().String()
	}
	if scene.CreatedAtNs == 0 {
		scene.CreatedAtNs = time.Now().UnixNano()
	}

	query := `
		INSERT INTO pipe_scenes (
			scene_id, seed, config_json, pipes, steps, blocked, saturated,
			fill_ratio, description, created_at_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		scene.SceneID,
		scene.Seed,
		string(scene.ConfigJSON),
		scene.Pipes,
		scene.Steps,
		scene.Blocked,
		scene.Saturated,
		scene.FillRatio,
		nullString(scene.Description),
		scene.CreatedAtNs,
	)
	if err != nil {
		return fmt.Errorf("insert scene: %w", err)
	}
	return nil
}

const sceneColumns = `
	scene_id, seed, config_json, pipes, steps, blocked, saturated,
	fill_ratio, description, created_at_ns
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScene(row rowScanner) (*Scene, error) {
	var scene Scene
	var configJSON string
	var description sql.NullString

	err := row.Scan(
		&scene.SceneID,
		&scene.Seed,
		&configJSON,
		&scene.Pipes,
		&scene.Steps,
		&scene.Blocked,
		&scene.Saturated,
		&scene.FillRatio,
		&description,
		&scene.CreatedAtNs,
	)
	if err != nil {
		return nil, err
	}

	scene.ConfigJSON = json.RawMessage(configJSON)
	if description.Valid {
		scene.Description = description.String
	}
	return &scene, nil
}

// GetScene retrieves a scene by ID
func (s *SceneStore) GetScene(sceneID string) (*Scene, error) {
	row := s.db.QueryRow(`SELECT `+sceneColumns+` FROM pipe_scenes WHERE scene_id = ?`, sceneID)

	scene, err := scanScene(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSceneNotFound, sceneID)
	}
	if err != nil {
		return nil, fmt.Errorf("get scene: %w", err)
	}
	return scene, nil
}

// ListScenes returns the most recent scenes first; limit <= 0 returns all
func (s *SceneStore) ListScenes(limit int) ([]*Scene, error) {
	query := `SELECT ` + sceneColumns + ` FROM pipe_scenes ORDER BY created_at_ns DESC, scene_id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	defer rows.Close()

	var scenes []*Scene
	for rows.Next() {
		scene, err := scanScene(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scene: %w", err)
		}
		scenes = append(scenes, scene)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	return scenes, nil
}

// FindBySeed returns every scene generated from seed, oldest first
func (s *SceneStore) FindBySeed(seed int64) ([]*Scene, error) {
	rows, err := s.db.Query(`SELECT `+sceneColumns+` FROM pipe_scenes WHERE seed = ? ORDER BY created_at_ns`, seed)
	if err != nil {
		return nil, fmt.Errorf("find scenes by seed: %w", err)
	}
	defer rows.Close()

	var scenes []*Scene
	for rows.Next() {
		scene, err := scanScene(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scene: %w", err)
		}
		scenes = append(scenes, scene)
	}
	return scenes, rows.Err()
}

// DeleteScene removes a scene by ID
func (s *SceneStore) DeleteScene(sceneID string) error {
	res, err := s.db.Exec(`DELETE FROM pipe_scenes WHERE scene_id = ?`, sceneID)
	if err != nil {
		return fmt.Errorf("delete scene: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete scene: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSceneNotFound, sceneID)
	}
	return nil
}

// Record archives a generated scene with its summary
func (s *SceneStore) Record(ps *pipe.PathSet, description string) (*Scene, error) {
	cfg := ps.Config
	cfg.Seed = ps.Seed
	configJSON, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	stats := analysis.Summarize(ps)
	scene := &Scene{
		Seed:        ps.Seed,
		ConfigJSON:  configJSON,
		Pipes:       stats.Pipes,
		Steps:       stats.Steps,
		Blocked:     stats.Blocked,
		Saturated:   stats.Saturated,
		FillRatio:   stats.FillRatio,
		Description: description,
	}
	if err := s.InsertScene(scene); err != nil {
		return nil, err
	}
	return scene, nil
}

// Config decodes the generation config stored with a scene
func (scene *Scene) Config() (pipe.Config, error) {
	var cfg pipe.Config
	if err := json.Unmarshal(scene.ConfigJSON, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config of scene %s: %w", scene.SceneID, err)
	}
	return cfg, nil
}

// Replay regenerates an archived scene; the result matches the recorded scene exactly
func Replay(scene *Scene) (*pipe.PathSet, error) {
	cfg, err := scene.Config()
	if err != nil {
		return nil, err
	}
	cfg.Seed = scene.Seed
	return pipe.Generate(cfg)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
