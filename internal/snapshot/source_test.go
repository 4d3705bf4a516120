package snapshot

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const samplePayload = `[
	{"id": 1, "first_name": "Dana", "last_name": "Whitfield", "full_name": "Dr. Dana Whitfield",
	 "specialty": "Radiology", "address": {"street": "12 Main St", "city": "Houston", "state": "TX", "zip": "77002"},
	 "rating": 4.8, "accepting_new_patients": false,
	 "insurance_accepted": ["Aetna"], "languages": ["English"]},
	{"id": 2, "first_name": "Omar", "last_name": "Haddad", "full_name": "Dr. Omar Haddad",
	 "specialty": "Radiology", "address": {"street": "34 Elm St", "city": "Houston", "state": "TX", "zip": "77002-1100"},
	 "rating": 4.2, "accepting_new_patients": true,
	 "insurance_accepted": [], "languages": ["Arabic"]}
]`

func TestMemorySourceRoundTrip(t *testing.T) {
	src := NewMemory()
	src.Put("providers.json", []byte(samplePayload))

	seeds, err := Load(context.Background(), src, "providers.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(seeds) != 2 {
		t.Fatalf("seeds = %d, want 2", len(seeds))
	}
	if seeds[0].ID != 1 || seeds[0].Address.Zip != "77002" || seeds[0].AcceptingNewPatients {
		t.Fatalf("unexpected seed %+v", seeds[0])
	}
	if len(seeds[1].Languages) != 1 || seeds[1].Languages[0] != "Arabic" {
		t.Fatalf("languages = %v", seeds[1].Languages)
	}
}

func TestMemorySourceMissingKey(t *testing.T) {
	src := NewMemory()
	if _, err := src.Fetch(context.Background(), "absent.json"); err == nil {
		t.Fatalf("expected error for missing key")
	}
}

func TestFilesystemSource(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "providers.json"), []byte(samplePayload), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	src, err := NewFilesystem(root)
	if err != nil {
		t.Fatalf("new filesystem: %v", err)
	}
	rc, err := src.Fetch(context.Background(), "providers.json")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	payload, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(payload) != samplePayload {
		t.Fatalf("payload mismatch")
	}
}

func TestFilesystemSourceRejectsBadKeys(t *testing.T) {
	src, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("new filesystem: %v", err)
	}
	for _, key := range []string{"", "  ", "/etc/passwd", "../escape.json"} {
		if _, err := src.Fetch(context.Background(), key); err == nil {
			t.Fatalf("key %q should be rejected", key)
		}
	}
}

func TestDecodeMalformedPayload(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"not": "an array"`)); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestOpenFactory(t *testing.T) {
	ctx := context.Background()

	t.Setenv("PROVIDERDIR_SNAPSHOT_DRIVER", "memory")
	src, err := Open(ctx)
	if err != nil || src.Driver() != DriverMemory {
		t.Fatalf("memory driver: %v %v", src, err)
	}

	t.Setenv("PROVIDERDIR_SNAPSHOT_DRIVER", "fs")
	t.Setenv("PROVIDERDIR_SNAPSHOT_FS_ROOT", t.TempDir())
	src, err = Open(ctx)
	if err != nil || src.Driver() != DriverFilesystem {
		t.Fatalf("fs driver: %v %v", src, err)
	}

	t.Setenv("PROVIDERDIR_SNAPSHOT_DRIVER", "gopher")
	if _, err := Open(ctx); err == nil {
		t.Fatalf("unknown driver should fail")
	}
}

func TestOpenS3RequiresBucket(t *testing.T) {
	t.Setenv("PROVIDERDIR_SNAPSHOT_DRIVER", "s3")
	t.Setenv("PROVIDERDIR_SNAPSHOT_S3_BUCKET", "")
	if _, err := Open(context.Background()); err == nil {
		t.Fatalf("s3 driver without bucket should fail")
	}
}

func TestNewS3Config(t *testing.T) {
	ctx := context.Background()
	if _, err := NewS3(ctx, S3Config{}); err == nil {
		t.Fatalf("missing bucket should fail")
	}
	src, err := NewS3(ctx, S3Config{
		Bucket:          "catalog-snapshots",
		Endpoint:        "http://127.0.0.1:9000",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		PathStyle:       true,
	})
	if err != nil {
		t.Fatalf("new s3: %v", err)
	}
	if src.Driver() != DriverS3 {
		t.Fatalf("driver = %v", src.Driver())
	}
}
