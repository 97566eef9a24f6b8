// Package northconfig resolves application configuration from an ordered
// list of sources and decodes the merged document into a Go type.
//
// Three kinds of source exist: the process environment ([EnvSource]),
// configuration files in JSON, YAML, TOML or RON ([FileSource]) and
// programmatic providers ([CustomSource]). Sources are resolved one after the
// other and each contribution is merged over the previous ones, so the last
// source wins, recursively:
//
//	cfg, err := northconfig.Resolve[Settings](ctx, northconfig.Options{
//		Sources: []northconfig.Source{
//			northconfig.File("config/base.json"),
//			northconfig.File("config/{{env}}.yaml"),
//			northconfig.Env(models.DefaultEnvSourceOptions()),
//		},
//	})
//
// A missing or unreadable file stops the resolution unless the source sets
// SkipOnError; a malformed file always does. Custom providers are best
// effort: their errors are logged and the source is skipped, and a provider
// that returns anything other than an object contributes nothing.
//
// [Watch] reports changes to the files behind watched sources so that the
// caller can resolve again from scratch.
package northconfig
