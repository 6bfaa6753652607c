package reader

import (
	"context"
	"path"
	"strings"

	"github.com/achilleasa/vincent/asset"
	"github.com/achilleasa/vincent/scene"
	"golang.org/x/xerrors"
)

// The Reader interface is implemented by all scene readers.
type Reader interface {
	// Read scene definition from a resource.
	Read(ctx context.Context, res *asset.Resource) (*scene.Scene, error)
}

// Read scene from a local file or http(s) URL. The reader is selected by
// the file extension.
func ReadScene(ctx context.Context, location string) (*scene.Scene, error) {
	var opener asset.Opener
	return ReadSceneWith(ctx, &opener, location)
}

// Read scene using the supplied opener for fetching the scene and any
// resources it references.
func ReadSceneWith(ctx context.Context, opener *asset.Opener, location string) (*scene.Scene, error) {
	var reader Reader
	switch strings.ToLower(path.Ext(location)) {
	case ".obj":
		reader = newWavefrontReader(opener)
	default:
		return nil, xerrors.Errorf("reader: unsupported scene format %q", path.Ext(location))
	}

	res, err := opener.Open(ctx, location, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return reader.Read(ctx, res)
}
