package cssvars

import "text/template"

// bootstrapTemplate restores a stored theme before first paint. It runs the
// same load, resolve and mark sequence as the resolver; the resolver accepts
// the marker being set already.
const bootstrapTemplate = `(function () {
  try {
    var stored = window.localStorage.getItem('{{ js .StorageKey }}');
    if (!stored) return;
    var theme = JSON.parse(stored);
    var scheme = theme.colorScheme === 'system'
      ? (window.matchMedia('(prefers-color-scheme: dark)').matches ? 'dark' : 'light')
      : (theme.colorScheme === 'dark' ? 'dark' : 'light');
    var root = document.documentElement;
    root.setAttribute('{{ .Attribute }}', scheme);
    Object.keys(theme.colors || {}).forEach(function (key) {
      var value = theme.colors[key];
      if (value && typeof value === 'object') {
        Object.keys(value).forEach(function (sub) {
          root.style.setProperty('--' + key + '-' + sub, value[sub]);
        });
      } else {
        root.style.setProperty('--' + key, value);
      }
    });
  } catch (e) {
    console.warn('Failed to restore theme from storage', e);
  }
})();
`

var bootstrap = template.Must(template.New("bootstrap").Parse(bootstrapTemplate))

// BootstrapScript returns the inline pre-render script for storageKey.
func BootstrapScript(storageKey string) string {
	return render(bootstrap, struct {
		StorageKey string
		Attribute  string
	}{storageKey, ThemeAttribute})
}
