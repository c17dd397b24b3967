package healthmate

import "embed"

// ContentFS holds the bundled affirmations. CONTENT_PATH overrides it with a directory on disk.
//
//go:embed content
var ContentFS embed.FS
