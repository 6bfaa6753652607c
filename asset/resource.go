package asset

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/xerrors"
)

// A Resource is a readable scene asset stream backed by a local file or an
// http(s) URL. Callers must Close it once they are done reading.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Path returns the location of this resource.
func (r *Resource) Path() string {
	return r.url.String()
}

// Name returns the last element of the resource path.
func (r *Resource) Name() string {
	return path.Base(r.url.Path)
}

// Returns true if the resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// Opener creates resources. Remote resources are fetched with Client.
type Opener struct {
	Client *http.Client
}

// Open a resource. If relTo is not nil and location is a relative path, the
// location is resolved against the directory of relTo; this lets a model
// reference its material library regardless of where the model lives.
func (o *Opener) Open(ctx context.Context, location string, relTo *Resource) (*Resource, error) {
	resURL, err := url.Parse(strings.Replace(location, `\`, `/`, -1))
	if err != nil {
		return nil, xerrors.Errorf("resource: invalid location %q: %w", location, err)
	}

	if resURL.Scheme == "" && relTo != nil && !filepath.IsAbs(resURL.Path) {
		resURL, err = resolveRelative(resURL.Path, relTo)
		if err != nil {
			return nil, err
		}
	}

	var reader io.ReadCloser
	switch resURL.Scheme {
	case "":
		reader, err = os.Open(filepath.Clean(resURL.Path))
		if err != nil {
			return nil, xerrors.Errorf("resource: could not open %q: %w", resURL.Path, err)
		}
	case "http", "https":
		reader, err = o.fetch(ctx, resURL)
		if err != nil {
			return nil, err
		}
	default:
		return nil, xerrors.Errorf("resource: unsupported scheme '%s'", resURL.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		url:        resURL,
	}, nil
}

func (o *Opener) fetch(ctx context.Context, resURL *url.URL) (io.ReadCloser, error) {
	client := o.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resURL.String(), nil)
	if err != nil {
		return nil, xerrors.Errorf("resource: could not fetch '%s': %w", resURL, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, xerrors.Errorf("resource: could not fetch '%s': %w", resURL, err)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, xerrors.Errorf("resource: could not fetch '%s': status %d", resURL, resp.StatusCode)
	}
	return resp.Body, nil
}

func resolveRelative(relPath string, relTo *Resource) (*url.URL, error) {
	resolved := *relTo.url
	if relTo.IsRemote() {
		resolved.Path = path.Join(path.Dir(relTo.url.Path), relPath)
		return &resolved, nil
	}

	prefix, err := filepath.Abs(relTo.url.Path)
	if err != nil {
		return nil, xerrors.Errorf("resource: could not detect abs path for %s: %w", relTo.url.Path, err)
	}
	resolved.Path = filepath.Join(filepath.Dir(prefix), relPath)
	return &resolved, nil
}

// Open a resource using the default http client.
func NewResource(location string, relTo *Resource) (*Resource, error) {
	var opener Opener
	return opener.Open(context.Background(), location, relTo)
}

// Create a resource from a reader.
func NewResourceFromStream(name string, source io.Reader) *Resource {
	resURL, err := url.Parse(name)
	if err != nil {
		resURL = &url.URL{Path: name}
	}
	return &Resource{
		ReadCloser: io.NopCloser(source),
		url:        resURL,
	}
}
