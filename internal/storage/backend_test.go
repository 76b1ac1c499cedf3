package storage

import (
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestBackends(t *testing.T) {
	Convey("Given each backend", t, func() {
		fileBackend, err := NewFile(afero.NewMemMapFs(), "/var/lib/sablier")
		So(err, ShouldBeNil)

		sqlBackend, err := OpenSQLite(":memory:", nil)
		So(err, ShouldBeNil)
		Reset(func() { _ = sqlBackend.Close() })

		backends := []struct {
			name    string
			backend Backend
		}{
			{"memory", NewMemory()},
			{"file", fileBackend},
			{"sql", sqlBackend},
		}

		for _, tc := range backends {
			name, backend := tc.name, tc.backend
			Convey("The "+name+" backend reports a missing key as not found", func() {
				_, err := backend.Get("sablier-ui-theme")
				So(err, ShouldEqual, ErrNotFound)
			})

			Convey("The "+name+" backend returns what was stored", func() {
				So(backend.Set("sablier-ui-theme", []byte(`{"colorScheme":"dark"}`)), ShouldBeNil)

				data, err := backend.Get("sablier-ui-theme")
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, `{"colorScheme":"dark"}`)

				Convey("and overwrites on a second write", func() {
					So(backend.Set("sablier-ui-theme", []byte(`{"colorScheme":"light"}`)), ShouldBeNil)

					data, err := backend.Get("sablier-ui-theme")
					So(err, ShouldBeNil)
					So(string(data), ShouldEqual, `{"colorScheme":"light"}`)
				})
			})

			Convey("The "+name+" backend keeps keys independent", func() {
				So(backend.Set("admin-theme", []byte("a")), ShouldBeNil)
				So(backend.Set("embed-theme", []byte("b")), ShouldBeNil)

				a, _ := backend.Get("admin-theme")
				b, _ := backend.Get("embed-theme")
				So(string(a), ShouldEqual, "a")
				So(string(b), ShouldEqual, "b")
			})
		}
	})
}

func TestFileBackendLayout(t *testing.T) {
	Convey("Given a file backend", t, func() {
		fs := afero.NewMemMapFs()
		backend, err := NewFile(fs, "/themes")
		So(err, ShouldBeNil)

		Convey("Keys map to sanitized file names", func() {
			So(backend.Path("my theme/../x"), ShouldEqual, filepath.Join("/themes", "my_theme_.._x.json"))
		})

		Convey("Writes leave no temporary file behind", func() {
			So(backend.Set("sablier-ui-theme", []byte("{}")), ShouldBeNil)

			exists, err := afero.Exists(fs, backend.Path("sablier-ui-theme")+".tmp")
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)
		})
	})
}

func TestUnavailableBackend(t *testing.T) {
	Convey("The unavailable backend fails every call", t, func() {
		_, err := Unavailable{}.Get("k")
		So(err, ShouldEqual, ErrUnavailable)
		So(Unavailable{}.Set("k", nil), ShouldEqual, ErrUnavailable)
	})
}

func TestMemoryBackendCopiesValues(t *testing.T) {
	Convey("The memory backend does not alias caller buffers", t, func() {
		m := NewMemory()
		buf := []byte("abc")
		So(m.Set("k", buf), ShouldBeNil)
		buf[0] = 'z'

		data, _ := m.Get("k")
		So(string(data), ShouldEqual, "abc")
	})
}
