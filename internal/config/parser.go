package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/pelletier/go-toml/v2"

	"github.com/Mechse/turbomigrate/internal/infrastructure/shell"
)

// CommandRunner executes a command in dir and returns its captured stdout.
// The module loaders use it to evaluate config scripts with node.
type CommandRunner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

// Parser loads a configuration file of any supported format into a Document.
// The format is chosen by file extension, matched case-insensitively.
type Parser struct {
	loaders   map[string]func(context.Context, string) (Document, error)
	cmdRunner CommandRunner
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithCommandRunner replaces the runner used to evaluate module configs.
func WithCommandRunner(runner CommandRunner) ParserOption {
	return func(p *Parser) {
		p.cmdRunner = runner
	}
}

// NewParser creates a Parser with loaders registered for every supported
// extension.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		loaders:   make(map[string]func(context.Context, string) (Document, error)),
		cmdRunner: shell.NewRunner().Output,
	}
	p.loaders[".toml"] = p.loadTOML
	p.loaders[".json"] = p.loadJSON
	p.loaders[".jsonc"] = p.loadJSONC
	p.loaders[".ts"] = p.loadTypeScript
	p.loaders[".js"] = p.loadModule
	p.loaders[".mjs"] = p.loadModule

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse loads the configuration file at path. Decode and evaluation failures
// come back as a ParseError naming the file.
func (p *Parser) Parse(ctx context.Context, path string) (Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	loader, ok := p.loaders[ext]
	if !ok {
		return nil, &UnsupportedFormatError{Path: path, Ext: ext}
	}
	doc, err := loader(ctx, path)
	if err != nil {
		return nil, &ParseError{Path: path, Cause: err}
	}
	return doc, nil
}

func (p *Parser) loadTOML(_ context.Context, path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode TOML: %w", err)
	}
	return doc, nil
}

func (p *Parser) loadJSON(_ context.Context, path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return unmarshalJSON(data)
}

func (p *Parser) loadJSONC(_ context.Context, path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return unmarshalJSON(stripJSONC(data))
}

func unmarshalJSON(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	return doc, nil
}

// loadTypeScript bundles a TypeScript config into a temporary ES module with
// esbuild, then evaluates the bundle like any other module config. Bundling
// resolves imports of schema files and shared constants the config may pull
// in.
func (p *Parser) loadTypeScript(ctx context.Context, path string) (Document, error) {
	tmpDir, err := os.MkdirTemp("", "turbomigrate-config")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	pkgJSON := filepath.Join(tmpDir, "package.json")
	if err := os.WriteFile(pkgJSON, []byte(`{"type": "module"}`), 0o644); err != nil {
		return nil, fmt.Errorf("create package.json: %w", err)
	}

	outFile := filepath.Join(tmpDir, "config.js")
	result := api.Build(api.BuildOptions{
		EntryPoints: []string{path},
		Bundle:      true,
		Platform:    api.PlatformNode,
		Format:      api.FormatESModule,
		Write:       true,
		Outfile:     outFile,
	})
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("build TypeScript config: %s", result.Errors[0].Text)
	}

	return p.loadModule(ctx, outFile)
}

// evalModule prints a config module as JSON: the default export when present,
// awaited if it is a factory function, otherwise the whole export surface.
const evalModule = `(async () => {
	const m = await import(%q);
	let cfg = m.default !== undefined ? m.default : { ...m };
	if (typeof cfg === "function") {
		cfg = await cfg();
	}
	process.stdout.write(JSON.stringify(cfg));
})();`

func (p *Parser) loadModule(ctx context.Context, path string) (Document, error) {
	script := fmt.Sprintf(evalModule, "./"+filepath.Base(path))
	out, err := p.cmdRunner(ctx, filepath.Dir(path), "node", "-e", script)
	if err != nil {
		return nil, fmt.Errorf("evaluate config module: %w", err)
	}
	return decodeModuleOutput(out)
}

// decodeModuleOutput takes the last non-empty stdout line, so stray
// console.log calls in user configs do not corrupt the document.
func decodeModuleOutput(out []byte) (Document, error) {
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return nil, fmt.Errorf("config module produced no output")
	}
	lines := strings.Split(trimmed, "\n")
	return unmarshalJSON([]byte(strings.TrimSpace(lines[len(lines)-1])))
}
