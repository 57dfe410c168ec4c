// Package static resolves and serves static assets.
//
// Composite merges several file providers (an on-disk directory, an embedded
// archive) into one fs.FS where the first provider that has a file wins.
// Files is a pipeline stage that serves existing files and lets every other
// request continue, optionally mounted under a URL prefix:
//
//	assets := static.Composite(os.DirFS("wwwroot"), embeddedAssets)
//	b.Use(static.Files[*handler.BaseContext](assets))
//	b.Use(static.Files[*handler.BaseContext](os.DirFS("Files/images"), static.WithRequestPath("/StaticFiles")))
//
// FS, Dir and File are terminal handlers for routes that should always
// answer from a filesystem, a directory or a single file.
//
// Directory listing is never produced. Path traversal is prevented by
// io/fs path validation.
package static
