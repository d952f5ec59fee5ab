package spirq

import (
	"go.uber.org/zap"

	"github.com/gogpu/spirq/ir"
)

// Reflect decodes cfg.Spirv, builds its type and variable tables, folds
// specialization constants, and assembles the module's entry points. It
// returns the first structural Error any pass encounters; later passes
// never run.
func Reflect(cfg Config) ([]ir.EntryPoint, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	mod, err := decodeModule(cfg)
	if err != nil {
		return nil, err
	}

	names, err := buildNameTable(mod.instrs)
	if err != nil {
		return nil, err
	}

	types, err := buildTypeSystem(mod.instrs, names, cfg.Logger)
	if err != nil {
		return nil, err
	}

	if specErr := foldSpecialization(mod.instrs, names, types, cfg); specErr != nil {
		return nil, specErr
	}
	types.patchArrayLengths()

	vars := buildVariableInventory(mod.instrs, names)
	analyzer := buildAccessAnalyzer(mod.instrs)

	ctx := &moduleContext{instrs: mod.instrs, names: names, types: types, vars: vars, analyzer: analyzer}
	eps, err := assembleEntryPoints(ctx, cfg)
	if err != nil {
		return nil, err
	}

	eps = postProcess(eps, cfg)

	cfg.Logger.Debug("reflection complete",
		zap.Int("entry_points", len(eps)),
		zap.Int("types", types.types.Count()),
	)
	return eps, nil
}
