package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chisel-cad/chisel/pkg/scene"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Snap.Distance != scene.DefaultSnapDistance {
		t.Errorf("Distance = %v, want %v", p.Snap.Distance, scene.DefaultSnapDistance)
	}
	if !p.Snap.MagneticPull {
		t.Error("MagneticPull should default on")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chisel", "preferences.yaml")

	p := Default()
	p.Snap.Distance = 35
	p.Snap.Falloff = scene.FalloffQuadratic
	p.Snap.TJointSnap = false
	p.LastScenePath = "/designs/kitchen.chisel"

	if err := Save(path, p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Snap.Distance != 35 {
		t.Errorf("Distance = %v, want 35", got.Snap.Distance)
	}
	if got.Snap.Falloff != scene.FalloffQuadratic {
		t.Errorf("Falloff = %v, want quadratic", got.Snap.Falloff)
	}
	if got.Snap.TJointSnap {
		t.Error("TJointSnap should be off after round trip")
	}
	if got.LastScenePath != "/designs/kitchen.chisel" {
		t.Errorf("LastScenePath = %q", got.LastScenePath)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.yaml")
	partial := "snap:\n  distance: 12\n"
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Snap.Distance != 12 {
		t.Errorf("Distance = %v, want 12", p.Snap.Distance)
	}
	// Fields absent from the file keep their defaults.
	if !p.Snap.MagneticPull {
		t.Error("MagneticPull should keep its default")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.yaml")
	if err := os.WriteFile(path, []byte("snap: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
	// Defaults still come back so the app can start.
	if p.Snap.Distance != scene.DefaultSnapDistance {
		t.Errorf("Distance = %v, want default", p.Snap.Distance)
	}
}

func TestRememberScene(t *testing.T) {
	p := Default()
	p.RememberScene("/a")
	p.RememberScene("/b")
	p.RememberScene("/a")

	if p.LastScenePath != "/a" {
		t.Errorf("LastScenePath = %q, want %q", p.LastScenePath, "/a")
	}
	want := []string{"/a", "/b"}
	if len(p.RecentScenes) != len(want) {
		t.Fatalf("RecentScenes = %v, want %v", p.RecentScenes, want)
	}
	for i := range want {
		if p.RecentScenes[i] != want[i] {
			t.Errorf("RecentScenes[%d] = %q, want %q", i, p.RecentScenes[i], want[i])
		}
	}
}
