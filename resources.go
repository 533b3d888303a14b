package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

const (
	FloorTextureName   = "FLOOR1.PNG"
	WallsTextureName   = "WALLS1.PNG"
	ShadowsTextureName = "SHADOWS_ALPHA.PNG"
	FontName           = "TETRIS.FN2"
)

var ErrNotFound = errors.New("not found")

// ResourceUnavailableError reports a resource that could not be fetched
// from its origin.
type ResourceUnavailableError struct {
	Name string
	Err  error
}

func (e *ResourceUnavailableError) Error() string {
	return fmt.Sprintf("resource %s unavailable: %s", e.Name, e.Err)
}

func (e *ResourceUnavailableError) Unwrap() error { return e.Err }

// DecodeError reports fetched bytes that are not a bitmap.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode %s: %s", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ResourceOrigin fetches named resources. A missing resource is reported
// with an error wrapping ErrNotFound.
type ResourceOrigin interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

type FSOrigin struct {
	FS fs.FS
}

func (o FSOrigin) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(o.FS, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return data, err
}

func NewDirOrigin(dir string) (FSOrigin, error) {
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return FSOrigin{}, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		return FSOrigin{}, err
	}
	if !info.IsDir() {
		return FSOrigin{}, fmt.Errorf("%s is not a directory", expanded)
	}
	return FSOrigin{FS: os.DirFS(expanded)}, nil
}

type HTTPOrigin struct {
	base   *url.URL
	client *http.Client
}

func NewHTTPOrigin(base string, client *http.Client) (*HTTPOrigin, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported origin scheme: %q", u.Scheme)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPOrigin{base: u, client: client}, nil
}

func (o *HTTPOrigin) Fetch(ctx context.Context, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.base.JoinPath(name).String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s: unexpected status %s", name, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// OpenOrigin picks an origin for a location: http(s) URLs are fetched
// over the network, anything else is a directory.
func OpenOrigin(location string) (ResourceOrigin, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPOrigin(location, nil)
	}
	return NewDirOrigin(location)
}

type ResourceKind int

const (
	KindImage ResourceKind = iota
	KindBlob
)

func (k ResourceKind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindBlob:
		return "blob"
	default:
		return fmt.Sprintf("ResourceKind(%d)", int(k))
	}
}

type ResourceSpec struct {
	Name string
	Kind ResourceKind
}

var DefaultManifest = []ResourceSpec{
	{Name: FloorTextureName, Kind: KindImage},
	{Name: WallsTextureName, Kind: KindImage},
	{Name: ShadowsTextureName, Kind: KindImage},
	{Name: FontName, Kind: KindBlob},
}

type Resources struct {
	Images map[string]DecodedImage
	Blobs  map[string][]byte
}

// CoreAssets hands the resources over for core construction. The
// Resources must not be used afterwards.
func (r *Resources) CoreAssets() (CoreAssets, error) {
	var assets CoreAssets
	var ok bool
	if assets.Floor, ok = r.Images[FloorTextureName]; !ok {
		return CoreAssets{}, fmt.Errorf("missing image %s", FloorTextureName)
	}
	if assets.Walls, ok = r.Images[WallsTextureName]; !ok {
		return CoreAssets{}, fmt.Errorf("missing image %s", WallsTextureName)
	}
	if assets.ShadowsAlpha, ok = r.Images[ShadowsTextureName]; !ok {
		return CoreAssets{}, fmt.Errorf("missing image %s", ShadowsTextureName)
	}
	if assets.Font, ok = r.Blobs[FontName]; !ok {
		return CoreAssets{}, fmt.Errorf("missing blob %s", FontName)
	}
	r.Images = nil
	r.Blobs = nil
	return assets, nil
}

type loadedResource struct {
	image DecodedImage
	blob  []byte
}

// LoadResources fetches and decodes every manifest entry concurrently.
// It returns after all of them have finished; the first failure wins and
// loads already in flight are left to complete.
func LoadResources(ctx context.Context, origin ResourceOrigin, manifest []ResourceSpec) (*Resources, error) {
	seen := make(map[string]bool, len(manifest))
	for _, spec := range manifest {
		if seen[spec.Name] {
			return nil, fmt.Errorf("duplicate resource %q in manifest", spec.Name)
		}
		seen[spec.Name] = true
	}
	loaded := make([]loadedResource, len(manifest))
	var g errgroup.Group
	for i, spec := range manifest {
		g.Go(func() error {
			res, err := loadResource(ctx, origin, spec)
			if err != nil {
				return err
			}
			loaded[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	resources := &Resources{
		Images: make(map[string]DecodedImage),
		Blobs:  make(map[string][]byte),
	}
	for i, spec := range manifest {
		switch spec.Kind {
		case KindImage:
			resources.Images[spec.Name] = loaded[i].image
		case KindBlob:
			resources.Blobs[spec.Name] = loaded[i].blob
		}
	}
	return resources, nil
}

func loadResource(ctx context.Context, origin ResourceOrigin, spec ResourceSpec) (loadedResource, error) {
	data, err := origin.Fetch(ctx, spec.Name)
	if err != nil {
		return loadedResource{}, &ResourceUnavailableError{Name: spec.Name, Err: err}
	}
	logger.Debug("fetched resource", "name", spec.Name, "kind", spec.Kind, "bytes", len(data))
	switch spec.Kind {
	case KindImage:
		img, err := DecodeImage(data)
		if err != nil {
			return loadedResource{}, &DecodeError{Name: spec.Name, Err: err}
		}
		return loadedResource{image: img}, nil
	case KindBlob:
		return loadedResource{blob: data}, nil
	default:
		return loadedResource{}, fmt.Errorf("resource %s has unknown kind %v", spec.Name, spec.Kind)
	}
}

// DecodeImage decodes any registered image format and redraws it onto an
// offscreen NRGBA bitmap, yielding unmultiplied RGBA rows from the top.
func DecodeImage(data []byte) (DecodedImage, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return DecodedImage{}, err
	}
	b := src.Bounds()
	if b.Empty() {
		return DecodedImage{}, errors.New("image has no pixels")
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if nrgba, ok := src.(*image.NRGBA); ok {
		// already unmultiplied, copy rows as they are
		for y := 0; y < b.Dy(); y++ {
			row := nrgba.Pix[nrgba.PixOffset(b.Min.X, b.Min.Y+y):]
			copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], row)
		}
	} else {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	}
	return DecodedImage{
		Width:  uint32(b.Dx()),
		Height: uint32(b.Dy()),
		Pix:    dst.Pix,
	}, nil
}
