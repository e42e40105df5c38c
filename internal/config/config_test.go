package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != DefaultInvadersConfig() {
		t.Errorf("embedded config = %+v\nexpected %+v", cfg, DefaultInvadersConfig())
	}
}

func TestLoadCustomYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "ship:\n  lives: 7\naliens:\n  rows: 2\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Ship.Lives != 7 || cfg.Aliens.Rows != 2 {
		t.Errorf("overrides not applied: lives=%d rows=%d", cfg.Ship.Lives, cfg.Aliens.Rows)
	}
	if cfg.Aliens.Cols != DefaultInvadersConfig().Aliens.Cols {
		t.Errorf("unset keys should keep defaults, cols = %d", cfg.Aliens.Cols)
	}
}

func TestLoadCustomTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	data := "[gameplay]\nwaves = 5\n\n[difficulty]\nkill_speed_factor = 0.9\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Gameplay.Waves != 5 {
		t.Errorf("Waves = %d, expected 5", cfg.Gameplay.Waves)
	}
	if cfg.Difficulty.KillSpeedFactor != 0.9 {
		t.Errorf("KillSpeedFactor = %v, expected 0.9", cfg.Difficulty.KillSpeedFactor)
	}
}

func TestLoadUserDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".invaders", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "invaders.toml"), []byte("[ship]\nlives = 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Ship.Lives != 9 {
		t.Errorf("Lives = %d, expected 9 from user config", cfg.Ship.Lives)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("ship: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "config: parse") {
		t.Errorf("Load() error = %v, expected parse error", err)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultInvadersConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*InvadersConfig)
	}{
		{"formation too wide", func(c *InvadersConfig) { c.Aliens.Cols = 40 }},
		{"no rows", func(c *InvadersConfig) { c.Aliens.Rows = 0 }},
		{"zero speed", func(c *InvadersConfig) { c.Aliens.BaseSpeed = 0 }},
		{"kill factor above one", func(c *InvadersConfig) { c.Difficulty.KillSpeedFactor = 1.5 }},
		{"kill factor zero", func(c *InvadersConfig) { c.Difficulty.KillSpeedFactor = 0 }},
		{"no lives", func(c *InvadersConfig) { c.Ship.Lives = 0 }},
		{"defense line off screen", func(c *InvadersConfig) { c.Gameplay.DefenseLine = 900 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultInvadersConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, expected error")
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultInvadersConfig()

	easy := base
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Ship.Lives <= base.Ship.Lives || easy.Aliens.BaseSpeed <= base.Aliens.BaseSpeed {
		t.Errorf("easy should add lives and slow the formation: %+v", easy.Ship)
	}

	hard := base
	ApplyPreset(&hard, DifficultyHard)
	if hard.Ship.Lives >= base.Ship.Lives || hard.Bolts.FireRate >= base.Bolts.FireRate {
		t.Errorf("hard should remove lives and fire more often")
	}

	normal := base
	ApplyPreset(&normal, DifficultyNormal)
	if normal != base {
		t.Error("normal should not change the config")
	}

	fixed := base
	ApplyPreset(&fixed, DifficultyFixed)
	if fixed.Difficulty.WaveScaling || fixed.Difficulty.KillSpeedFactor != 1 {
		t.Errorf("fixed should disable speed ramps: %+v", fixed.Difficulty)
	}
	if err := fixed.Validate(); err != nil {
		t.Errorf("fixed preset should still validate: %v", err)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in       string
		expected DifficultyPreset
		wantErr  bool
	}{
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"", DifficultyNormal, false},
		{"nightmare", "", true},
	}

	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr || got != tc.expected {
			t.Errorf("ParsePreset(%q) = %q, %v", tc.in, got, err)
		}
	}
}

func TestPace(t *testing.T) {
	cfg := DefaultInvadersConfig()
	p := NewPace(cfg)

	if got := p.WaveSpeed(0); got != cfg.Aliens.BaseSpeed {
		t.Errorf("WaveSpeed(0) = %v, expected base", got)
	}
	if got := p.WaveSpeed(2); math.Abs(got-cfg.Aliens.BaseSpeed/3) > 1e-12 {
		t.Errorf("WaveSpeed(2) = %v, expected base/3", got)
	}

	speed := p.WaveSpeed(0)
	for i := 0; i < 10; i++ {
		next := p.AfterKill(speed)
		if next >= speed {
			t.Fatalf("kill %d: speed %v did not decrease from %v", i, next, speed)
		}
		speed = next
	}
	if expected := math.Pow(0.97, 10); math.Abs(speed-expected) > 1e-12 {
		t.Errorf("after 10 kills speed = %v, expected %v", speed, expected)
	}

	// The floor holds no matter how many kills.
	for i := 0; i < 1000; i++ {
		speed = p.AfterKill(speed)
	}
	if speed != cfg.Difficulty.MinSpeed {
		t.Errorf("speed = %v, expected floor %v", speed, cfg.Difficulty.MinSpeed)
	}

	cfg.Difficulty.WaveScaling = false
	if got := NewPace(cfg).WaveSpeed(2); got != cfg.Aliens.BaseSpeed {
		t.Errorf("WaveSpeed without scaling = %v, expected base", got)
	}
}
