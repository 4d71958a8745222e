package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsUnsafePath(t *testing.T) {
	tests := []struct {
		path    string
		unsafe  bool
		wantErr bool
	}{
		{".", true, false},                 // original dot
		{"..", true, false},                // original double dot
		{"./", true, false},                // dot with slash
		{"./.", true, false},               // multiple dots
		{"./../../foo/../..", true, false}, // complex path to root
		{"/", true, false},                 // root
		{"//", true, false},                // double slash
		{"//foo", true, false},             // path with double slash
		{"/foo", false, false},             // normal absolute path
		{"foo", false, false},              // normal relative path
		{"foo/bar", false, false},          // normal nested path
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			unsafe, err := IsUnsafePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("IsUnsafePath() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if unsafe != tt.unsafe {
				t.Errorf("IsUnsafePath() = %v, want %v", unsafe, tt.unsafe)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	testHome := "/test/home/user"
	t.Setenv("HOME", testHome)

	testCases := []struct {
		input    string
		expected string
	}{
		{"~/test", testHome + "/test"},
		{"~", testHome},
		{"/a/~/b", "/a/~/b"},
		{"~user/x", "~user/x"},
		{"$HOME/docs", "$HOME/docs"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ExpandHome(tc.input)
			if err != nil {
				t.Fatalf("ExpandHome() error = %v", err)
			}
			if got != tc.expected {
				t.Errorf("ExpandHome() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestExpandEnv(t *testing.T) {
	testHome := "/test/home/user"
	t.Setenv("HOME", testHome)
	t.Setenv("WRM_TEST_VAR", "value")

	testCases := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "Environment variable expansion",
			input:    "$HOME/docs",
			expected: testHome + "/docs",
		},
		{
			name:     "Braced environment variable",
			input:    "/tmp/${WRM_TEST_VAR}/x",
			expected: "/tmp/value/x",
		},
		{
			name:     "Unset variable expands to empty",
			input:    "/tmp/$WRM_TEST_UNSET_VAR/x",
			expected: "/tmp//x",
		},
		{
			name:     "Lone dollar",
			input:    "/tmp/$",
			expected: "/tmp/$",
		},
		{
			name:    "Unclosed brace",
			input:   "${HOME",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExpandEnv(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ExpandEnv() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr {
				return
			}
			if got != tc.expected {
				t.Errorf("ExpandEnv() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	t.Setenv("HOME", "/test/home/user")
	t.Setenv("WRM_TEST_VAR", "value")

	tests := []struct {
		in   string
		want string
	}{
		{"a.txt", filepath.Join(dir, "a.txt")},
		{"./sub/../b.txt", filepath.Join(dir, "b.txt")},
		{"~/c.txt", "/test/home/user/c.txt"},
		// file names are literal
		{"report$1.txt", filepath.Join(dir, "report$1.txt")},
		{"$WRM_TEST_VAR", filepath.Join(dir, "$WRM_TEST_VAR")},
		{"foo${x", filepath.Join(dir, "foo${x")},
	}
	for _, tt := range tests {
		got, err := Resolve(tt.in)
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := Resolve(""); err == nil {
		t.Error("Resolve(\"\") should fail")
	}
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("HOME", "/test/home/user")
	t.Setenv("WRM_TEST_VAR", "value")

	tests := []struct {
		in   string
		want string
	}{
		{"~/wrm", "/test/home/user/wrm"},
		{"$HOME/wrm", "/test/home/user/wrm"},
		{"/srv/${WRM_TEST_VAR}/wrm", "/srv/value/wrm"},
	}
	for _, tt := range tests {
		got, err := ResolveConfigPath(tt.in)
		if err != nil {
			t.Fatalf("ResolveConfigPath(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ResolveConfigPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := ResolveConfigPath("${HOME"); err == nil {
		t.Error("ResolveConfigPath() should fail on an unclosed brace")
	}
}

func TestIsWithin(t *testing.T) {
	tests := []struct {
		path, dir string
		want      bool
	}{
		{"/a/b", "/a/b", true},
		{"/a/b/c", "/a/b", true},
		{"/a/bc", "/a/b", false},
		{"/a", "/a/b", false},
		{"/a/..b", "/a", true},
	}
	for _, tt := range tests {
		if got := IsWithin(tt.path, tt.dir); got != tt.want {
			t.Errorf("IsWithin(%q, %q) = %v, want %v", tt.path, tt.dir, got, tt.want)
		}
	}
}

func TestTypeOf(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	sub := filepath.Join(dir, "sub")
	link := filepath.Join(dir, "link")
	dangling := filepath.Join(dir, "dangling")

	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(file, link); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(dir, "nowhere"), dangling); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want FileType
	}{
		{file, TypeFile},
		{sub, TypeDirectory},
		{link, TypeSymlink},
		{dangling, TypeSymlink},
	}
	for _, tt := range tests {
		got, err := TypeOf(tt.path)
		if err != nil {
			t.Fatalf("TypeOf(%q) error = %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("TypeOf(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}

	if !Exists(dangling) {
		t.Error("Exists() should report dangling symlinks")
	}
	if Exists(filepath.Join(dir, "nowhere")) {
		t.Error("Exists() reported a missing path")
	}
	if _, err := TypeOf(filepath.Join(dir, "nowhere")); !os.IsNotExist(err) {
		t.Errorf("TypeOf() on missing path error = %v", err)
	}
}

func TestDirSize(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a"), make([]byte, 10), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "b"), make([]byte, 32), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(dir, "a"), filepath.Join(dir, "link")); err != nil {
		t.Fatal(err)
	}

	size, err := DirSize(dir)
	if err != nil {
		t.Fatalf("DirSize() error = %v", err)
	}
	if size != 42 {
		t.Errorf("DirSize() = %d, want 42", size)
	}

	size, err = DirSize(filepath.Join(dir, "a"))
	if err != nil {
		t.Fatalf("DirSize() error = %v", err)
	}
	if size != 10 {
		t.Errorf("DirSize() on file = %d, want 10", size)
	}
}
