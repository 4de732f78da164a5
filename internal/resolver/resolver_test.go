package resolver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quantmind-br/pylocate/internal/core"
	"github.com/quantmind-br/pylocate/internal/platform"
	"github.com/quantmind-br/pylocate/internal/probe"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var posix = core.Platform{Kind: core.KindPosix}

type probeResult struct {
	version core.Version
	err     error
}

// fakeProber replays results in order and repeats the last one
type fakeProber struct {
	results      []probeResult
	versionCalls int
	interpreters []string
}

func (f *fakeProber) next() (core.Version, error) {
	if len(f.results) == 0 {
		return core.Version{}, probe.ErrProbeFailed
	}
	idx := f.versionCalls + len(f.interpreters) - 1
	if idx >= len(f.results) {
		idx = len(f.results) - 1
	}
	r := f.results[idx]
	return r.version, r.err
}

func (f *fakeProber) ProbeVersion(context.Context) (core.Version, error) {
	f.versionCalls++
	return f.next()
}

func (f *fakeProber) ProbeInterpreter(_ context.Context, interpreter string) (core.Version, error) {
	f.interpreters = append(f.interpreters, interpreter)
	return f.next()
}

func returns(v core.Version) *fakeProber {
	return &fakeProber{results: []probeResult{{version: v}}}
}

func failing() *fakeProber {
	return &fakeProber{results: []probeResult{{err: probe.ErrProbeFailed}}}
}

// statCountingFs counts Stat calls on the wrapped filesystem
type statCountingFs struct {
	afero.Fs
	stats int
}

func (s *statCountingFs) Stat(name string) (os.FileInfo, error) {
	s.stats++
	return s.Fs.Stat(name)
}

func touch(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, []byte{}, 0755))
}

func abs(t *testing.T, path string) string {
	t.Helper()
	p, err := filepath.Abs(path)
	require.NoError(t, err)
	return p
}

func TestFindLibrary_ResolvesAcrossDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "/opt/py/bin/python3")
	touch(t, fs, "/opt/py/lib/libpython3.11.so")

	r := New(fs, platform.MapEnv{}, posix, returns(core.Version{Major: 3, Minor: 11}), Options{}, nil)

	path, err := r.FindLibrary(context.Background(), []string{"/opt/py/bin", "/opt/py/lib"})
	require.NoError(t, err)
	assert.Equal(t, abs(t, filepath.Join("/opt/py/lib", "libpython3.11.so")), path)
	assert.True(t, filepath.IsAbs(path))
}

func TestFindLibrary_EmptySearchPath(t *testing.T) {
	fs := &statCountingFs{Fs: afero.NewMemMapFs()}
	prober := returns(core.Version{Major: 3, Minor: 11})
	r := New(fs, platform.MapEnv{}, posix, prober, Options{}, nil)

	for _, paths := range [][]string{nil, {}} {
		path, err := r.FindLibrary(context.Background(), paths)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Empty(t, path)
	}

	assert.Zero(t, fs.stats)
	assert.Zero(t, prober.versionCalls)
	assert.Empty(t, prober.interpreters)
}

func TestFindLibrary_NoCandidates(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "/usr/lib/libpython3.11.so")
	prober := returns(core.Version{Major: 3, Minor: 11})

	r := New(fs, platform.MapEnv{}, posix, prober, Options{}, nil)
	_, err := r.FindLibrary(context.Background(), []string{"/usr/bin", "/usr/lib"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, prober.versionCalls)
}

func TestFindLibrary_ProbeFailureSkipsEveryCandidate(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "/usr/bin/python3")
	touch(t, fs, "/usr/bin/python")
	touch(t, fs, "/usr/lib/libpython0.0.so")
	prober := failing()

	r := New(fs, platform.MapEnv{}, posix, prober, Options{}, nil)
	path, attempts, err := r.Trace(context.Background(), []string{"/usr/bin", "/usr/lib"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, path)
	assert.Equal(t, 2, prober.versionCalls)

	require.Len(t, attempts, 2)
	for _, a := range attempts {
		assert.ErrorIs(t, a.Err, probe.ErrProbeFailed)
		assert.Empty(t, a.Library)
	}
}

func TestFindLibrary_ZeroVersionNeverBuildsFilename(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "/usr/bin/python3")
	touch(t, fs, "/usr/lib/libpython0.0.so")

	// A prober that misreports success with a zero version
	prober := &fakeProber{results: []probeResult{{version: core.Version{}}}}
	r := New(fs, platform.MapEnv{}, posix, prober, Options{}, nil)

	path, attempts, err := r.Trace(context.Background(), []string{"/usr/bin", "/usr/lib"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, path)
	require.Len(t, attempts, 1)
	assert.ErrorIs(t, attempts[0].Err, ErrUnknownVersion)
	assert.Empty(t, attempts[0].Library)
}

func TestFindLibrary_LaterCandidateSucceeds(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "/a/python3")
	touch(t, fs, "/b/python3")
	touch(t, fs, "/lib/libpython3.12.so")

	prober := &fakeProber{results: []probeResult{
		{err: probe.ErrProbeFailed},
		{version: core.Version{Major: 3, Minor: 12}},
	}}
	r := New(fs, platform.MapEnv{}, posix, prober, Options{}, nil)

	path, attempts, err := r.Trace(context.Background(), []string{"/a", "/b", "/lib"})
	require.NoError(t, err)
	assert.Equal(t, abs(t, filepath.Join("/lib", "libpython3.12.so")), path)
	require.Len(t, attempts, 2)
	assert.ErrorIs(t, attempts[0].Err, probe.ErrProbeFailed)
	assert.Equal(t, filepath.Join("/b", "python3"), attempts[1].Candidate)
	assert.Equal(t, "libpython3.12.so", attempts[1].Library)
	assert.Equal(t, path, attempts[1].Path)
}

func TestFindLibrary_LibraryMissing(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "/usr/bin/python3")
	touch(t, fs, "/usr/lib/libpython3.10.so")

	r := New(fs, platform.MapEnv{}, posix, returns(core.Version{Major: 3, Minor: 11}), Options{}, nil)
	path, attempts, err := r.Trace(context.Background(), []string{"/usr/bin", "/usr/lib"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, path)
	require.Len(t, attempts, 1)
	assert.ErrorIs(t, attempts[0].Err, ErrLibraryMissing)
	assert.Equal(t, "libpython3.11.so", attempts[0].Library)
}

func TestFindLibrary_SearchesWholePathInPriorityOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "/first/libpython3.11.so")
	touch(t, fs, "/usr/bin/python3")
	touch(t, fs, "/second/libpython3.11.so")

	r := New(fs, platform.MapEnv{}, posix, returns(core.Version{Major: 3, Minor: 11}), Options{}, nil)
	path, err := r.FindLibrary(context.Background(), []string{"/first", "/usr/bin", "/second"})
	require.NoError(t, err)
	assert.Equal(t, abs(t, filepath.Join("/first", "libpython3.11.so")), path)
}

func TestFindLibrary_LibraryDirectoryIsIgnored(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "/usr/bin/python3")
	require.NoError(t, fs.MkdirAll("/usr/lib/libpython3.11.so", 0755))

	r := New(fs, platform.MapEnv{}, posix, returns(core.Version{Major: 3, Minor: 11}), Options{}, nil)
	_, err := r.FindLibrary(context.Background(), []string{"/usr/bin", "/usr/lib"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindLibrary_Windows(t *testing.T) {
	t.Run("dll naming", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		touch(t, fs, "/Python311/python.exe")
		touch(t, fs, "/Python311/python311.dll")

		plat := core.Platform{Kind: core.KindWindows}
		r := New(fs, platform.MapEnv{}, plat, returns(core.Version{Major: 3, Minor: 11}), Options{}, nil)
		path, err := r.FindLibrary(context.Background(), []string{"/Python311"})
		require.NoError(t, err)
		assert.Equal(t, abs(t, filepath.Join("/Python311", "python311.dll")), path)
	})

	t.Run("hybrid shell uses so naming", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		touch(t, fs, "/mingw64/bin/python3.exe")
		touch(t, fs, "/mingw64/bin/python311.dll")
		touch(t, fs, "/mingw64/lib/libpython3.11.so")

		plat := core.Platform{Kind: core.KindWindows, HybridShell: true}
		r := New(fs, platform.MapEnv{}, plat, returns(core.Version{Major: 3, Minor: 11}), Options{}, nil)
		path, err := r.FindLibrary(context.Background(), []string{"/mingw64/bin", "/mingw64/lib"})
		require.NoError(t, err)
		assert.Equal(t, abs(t, filepath.Join("/mingw64/lib", "libpython3.11.so")), path)
	})
}

func TestFindLibrary_UnsupportedPlatform(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "/usr/bin/python3")

	r := New(fs, platform.MapEnv{}, core.Platform{Kind: core.KindOther}, returns(core.Version{Major: 3, Minor: 11}), Options{}, nil)
	_, err := r.FindLibrary(context.Background(), []string{"/usr/bin"})
	assert.ErrorIs(t, err, core.ErrUnsupportedPlatform)
}

func TestFindLibrary_ProbeTarget(t *testing.T) {
	setup := func(t *testing.T) afero.Fs {
		fs := afero.NewMemMapFs()
		touch(t, fs, "/a/python3")
		touch(t, fs, "/b/python3")
		return fs
	}

	t.Run("default probes the PATH interpreter for every candidate", func(t *testing.T) {
		prober := returns(core.Version{Major: 3, Minor: 11})
		r := New(setup(t), platform.MapEnv{}, posix, prober, Options{}, nil)

		_, err := r.FindLibrary(context.Background(), []string{"/a", "/b"})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, 2, prober.versionCalls)
		assert.Empty(t, prober.interpreters)
	})

	t.Run("per candidate probes each path", func(t *testing.T) {
		prober := returns(core.Version{Major: 3, Minor: 11})
		r := New(setup(t), platform.MapEnv{}, posix, prober, Options{PerCandidate: true}, nil)

		_, err := r.FindLibrary(context.Background(), []string{"/a", "/b"})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Zero(t, prober.versionCalls)
		assert.Equal(t, []string{filepath.Join("/a", "python3"), filepath.Join("/b", "python3")}, prober.interpreters)
	})
}

func TestFindLibrary_Idempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "/usr/bin/python3")
	touch(t, fs, "/usr/lib/libpython3.11.so")

	r := New(fs, platform.MapEnv{}, posix, returns(core.Version{Major: 3, Minor: 11}), Options{}, nil)
	paths := []string{"/usr/bin", "/usr/lib"}

	first, err1 := r.FindLibrary(context.Background(), paths)
	second, err2 := r.FindLibrary(context.Background(), paths)
	assert.Equal(t, first, second)
	assert.Equal(t, err1, err2)
}

func TestResolve_UsesEnvironment(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "/usr/bin/python3")
	touch(t, fs, "/usr/lib/libpython3.9.so")

	env := platform.MapEnv{platform.PathVar: strings.Join([]string{"/usr/bin", "/usr/lib"}, ":")}
	r := New(fs, env, posix, returns(core.Version{Major: 3, Minor: 9}), Options{}, nil)

	path, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, abs(t, filepath.Join("/usr/lib", "libpython3.9.so")), path)
}

func TestResolve_MissingPath(t *testing.T) {
	r := New(afero.NewMemMapFs(), platform.MapEnv{}, posix, returns(core.Version{Major: 3, Minor: 9}), Options{}, nil)
	_, err := r.Resolve(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve_UnsupportedPlatform(t *testing.T) {
	env := platform.MapEnv{platform.PathVar: "/usr/bin"}
	r := New(afero.NewMemMapFs(), env, core.Platform{Kind: core.KindOther}, returns(core.Version{Major: 3, Minor: 9}), Options{}, nil)
	_, err := r.Resolve(context.Background())
	assert.True(t, errors.Is(err, core.ErrUnsupportedPlatform))
}

func TestLibraryName(t *testing.T) {
	v311 := core.Version{Major: 3, Minor: 11}

	tests := []struct {
		name     string
		platform core.Platform
		version  core.Version
		want     string
		wantErr  error
	}{
		{"posix", core.Platform{Kind: core.KindPosix}, v311, "libpython3.11.so", nil},
		{"posix hybrid", core.Platform{Kind: core.KindPosix, HybridShell: true}, v311, "libpython3.11.so", nil},
		{"windows", core.Platform{Kind: core.KindWindows}, v311, "python311.dll", nil},
		{"windows py2", core.Platform{Kind: core.KindWindows}, core.Version{Major: 2, Minor: 7}, "python27.dll", nil},
		{"windows hybrid", core.Platform{Kind: core.KindWindows, HybridShell: true}, v311, "libpython3.11.so", nil},
		{"other hybrid", core.Platform{Kind: core.KindOther, HybridShell: true}, v311, "libpython3.11.so", nil},
		{"other", core.Platform{Kind: core.KindOther}, v311, "", core.ErrUnsupportedPlatform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LibraryName(tt.platform, tt.version)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("zero version is rejected", func(t *testing.T) {
		name, err := LibraryName(core.Platform{Kind: core.KindPosix}, core.Version{})
		assert.Error(t, err)
		assert.Empty(t, name)
	})
}

func TestParentDir(t *testing.T) {
	dir, ok := parentDir(filepath.Join("/usr/bin", "python3"))
	assert.True(t, ok)
	assert.Equal(t, filepath.Clean("/usr/bin"), dir)

	dir, ok = parentDir("python3")
	assert.True(t, ok)
	assert.Equal(t, ".", dir)

	_, ok = parentDir("")
	assert.False(t, ok)

	_, ok = parentDir(string(filepath.Separator))
	assert.False(t, ok)
}

func TestPlatformAccessors(t *testing.T) {
	env := platform.MapEnv{platform.PathVar: "/a:/b"}
	r := New(afero.NewMemMapFs(), env, posix, failing(), Options{}, nil)
	assert.Equal(t, posix, r.Platform())

	paths, err := r.SearchPaths()
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/b"}, paths)
}
