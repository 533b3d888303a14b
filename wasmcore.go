package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

type wasmExport struct {
	name    string
	params  int
	results int
}

// Functions a core module must export, besides a memory named "memory".
// Every function but alloc and editor_new takes the editor handle first.
// key_down receives the Keycode ordinal: Escape is 0 through F9 at 32 in
// the core's own key order, and E, which the core has no key for, is 33.
var wasmCoreExports = []wasmExport{
	{"alloc", 1, 1},
	{"editor_new", 11, 1},
	{"screen", 1, 1},
	{"screen_width", 1, 1},
	{"screen_height", 1, 1},
	{"frame", 1, 0},
	{"key_down", 2, 0},
	{"mouse_move", 3, 0},
	{"mouse_down", 2, 0},
	{"mouse_up", 2, 0},
}

// WasmBackend runs a core compiled to WebAssembly.
type WasmBackend struct {
	module []byte
}

func NewWasmBackend(module []byte) *WasmBackend {
	return &WasmBackend{module: module}
}

func LoadWasmBackend(path string) (*WasmBackend, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	module, err := os.ReadFile(expanded)
	if err != nil {
		return nil, err
	}
	return NewWasmBackend(module), nil
}

func (b *WasmBackend) NewCore(ctx context.Context, assets CoreAssets) (Core, error) {
	runtime := wazero.NewRuntime(ctx)
	core, err := newWasmCore(ctx, runtime, b.module, assets)
	if err != nil {
		runtime.Close(ctx)
		return nil, &InitializationError{Err: err}
	}
	return core, nil
}

type WasmCore struct {
	ctx     context.Context
	runtime wazero.Runtime
	mod     api.Module
	mem     api.Memory
	fns     map[string]api.Function
	handle  uint64
}

func newWasmCore(ctx context.Context, runtime wazero.Runtime, module []byte, assets CoreAssets) (*WasmCore, error) {
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, runtime); err != nil {
		return nil, err
	}
	mod, err := runtime.InstantiateWithConfig(ctx, module, wazero.NewModuleConfig().WithName("core"))
	if err != nil {
		return nil, fmt.Errorf("instantiate core module: %w", err)
	}
	mem := mod.ExportedMemory("memory")
	if mem == nil {
		return nil, errors.New("core module does not export its memory")
	}
	c := &WasmCore{
		ctx:     context.WithoutCancel(ctx),
		runtime: runtime,
		mod:     mod,
		mem:     mem,
		fns:     make(map[string]api.Function, len(wasmCoreExports)),
	}
	for _, export := range wasmCoreExports {
		fn := mod.ExportedFunction(export.name)
		if fn == nil {
			return nil, fmt.Errorf("core module does not export %s", export.name)
		}
		def := fn.Definition()
		if len(def.ParamTypes()) != export.params || len(def.ResultTypes()) != export.results {
			return nil, fmt.Errorf("core export %s has signature %v -> %v", export.name, def.ParamTypes(), def.ResultTypes())
		}
		c.fns[export.name] = fn
	}

	var params []uint64
	for _, img := range []DecodedImage{assets.Floor, assets.Walls, assets.ShadowsAlpha} {
		ptr, err := c.copyIn(ctx, img.Pix)
		if err != nil {
			return nil, err
		}
		params = append(params, ptr, uint64(img.Width), uint64(img.Height))
	}
	fontPtr, err := c.copyIn(ctx, assets.Font)
	if err != nil {
		return nil, err
	}
	params = append(params, fontPtr, uint64(len(assets.Font)))
	results, err := c.fns["editor_new"].Call(ctx, params...)
	if err != nil {
		return nil, fmt.Errorf("editor_new: %w", err)
	}
	if uint32(results[0]) == 0 {
		return nil, errors.New("core rejected its resources")
	}
	c.handle = uint64(uint32(results[0]))
	return c, nil
}

// copyIn places data in core memory through the module's allocator. This
// only happens while constructing the core.
func (c *WasmCore) copyIn(ctx context.Context, data []byte) (uint64, error) {
	results, err := c.fns["alloc"].Call(ctx, uint64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("alloc: %w", err)
	}
	ptr := uint32(results[0])
	if !c.mem.Write(ptr, data) {
		return 0, fmt.Errorf("alloc returned %#x, outside memory for %d bytes", ptr, len(data))
	}
	return uint64(ptr), nil
}

// call panics when the core traps: after construction there is nothing
// the harness could do about it.
func (c *WasmCore) call(name string, params ...uint64) uint32 {
	results, err := c.fns[name].Call(c.ctx, append([]uint64{c.handle}, params...)...)
	if err != nil {
		panic(fmt.Errorf("core %s: %w", name, err))
	}
	if len(results) == 0 {
		return 0
	}
	return uint32(results[0])
}

func (c *WasmCore) ScreenWidth() uint32        { return c.call("screen_width") }
func (c *WasmCore) ScreenHeight() uint32       { return c.call("screen_height") }
func (c *WasmCore) ScreenBufferOffset() uint32 { return c.call("screen") }

// Memory is the module's exported memory. Views into it are invalidated
// when the core grows its memory.
func (c *WasmCore) Memory() LinearMemory { return c.mem }

func (c *WasmCore) Frame() {
	c.call("frame")
}

func (c *WasmCore) KeyDown(key Keycode) {
	c.call("key_down", api.EncodeI32(int32(key)))
}

func (c *WasmCore) MouseMove(x, y float64) {
	c.call("mouse_move", api.EncodeF32(float32(x)), api.EncodeF32(float32(y)))
}

func (c *WasmCore) MouseDown(button MouseButton) {
	c.call("mouse_down", api.EncodeI32(int32(button)))
}

func (c *WasmCore) MouseUp(button MouseButton) {
	c.call("mouse_up", api.EncodeI32(int32(button)))
}

func (c *WasmCore) Close() error {
	return c.runtime.Close(c.ctx)
}
