package repository

import (
	"fmt"
	"sort"

	"go-lens-solver/pkg/lenses"
	"go-lens-solver/pkg/models"
)

// modelBuilder turns a raw parameter map into a field plus typed parameters.
type modelBuilder func(params map[string]float64) (lenses.Field, models.LensParameters, error)

// registryRepository implements LensModelRepository over a static registry
// of model builders. Fields are stateless, so one instance per model is
// shared across all requests.
type registryRepository struct {
	builders map[string]modelBuilder
}

// NewLensModelRepository creates a repository with the built-in lens models:
// point_mass, sis, nis, external_shear, and sis_shear (SIS plus external
// shear as a composite).
func NewLensModelRepository() LensModelRepository {
	pointMass := lenses.NewPointMass()
	sis := lenses.NewSIS()
	nis := lenses.NewNIS()
	shear := lenses.NewExternalShear()
	sisShear := lenses.NewComposite(sis, shear)

	return &registryRepository{
		builders: map[string]modelBuilder{
			"point_mass": func(p map[string]float64) (lenses.Field, models.LensParameters, error) {
				te, err := requiredParam(p, "theta_e")
				if err != nil {
					return nil, nil, err
				}
				if te <= 0 {
					return nil, nil, fmt.Errorf("%w: theta_e must be positive", ErrInvalidParameter)
				}
				return pointMass, lenses.PointMassParams{
					EinsteinRadius: te,
					Center:         centerParam(p),
				}, nil
			},
			"sis": func(p map[string]float64) (lenses.Field, models.LensParameters, error) {
				te, err := requiredParam(p, "theta_e")
				if err != nil {
					return nil, nil, err
				}
				if te <= 0 {
					return nil, nil, fmt.Errorf("%w: theta_e must be positive", ErrInvalidParameter)
				}
				return sis, lenses.SISParams{
					EinsteinRadius: te,
					Center:         centerParam(p),
				}, nil
			},
			"nis": func(p map[string]float64) (lenses.Field, models.LensParameters, error) {
				te, err := requiredParam(p, "theta_e")
				if err != nil {
					return nil, nil, err
				}
				core, err := requiredParam(p, "core_radius")
				if err != nil {
					return nil, nil, err
				}
				if te <= 0 || core < 0 {
					return nil, nil, fmt.Errorf("%w: theta_e must be positive and core_radius non-negative", ErrInvalidParameter)
				}
				return nis, lenses.NISParams{
					EinsteinRadius: te,
					CoreRadius:     core,
					Center:         centerParam(p),
				}, nil
			},
			"external_shear": func(p map[string]float64) (lenses.Field, models.LensParameters, error) {
				g1, err := requiredParam(p, "gamma_1")
				if err != nil {
					return nil, nil, err
				}
				g2, err := requiredParam(p, "gamma_2")
				if err != nil {
					return nil, nil, err
				}
				return shear, lenses.ShearParams{Gamma1: g1, Gamma2: g2}, nil
			},
			"sis_shear": func(p map[string]float64) (lenses.Field, models.LensParameters, error) {
				te, err := requiredParam(p, "theta_e")
				if err != nil {
					return nil, nil, err
				}
				g1, err := requiredParam(p, "gamma_1")
				if err != nil {
					return nil, nil, err
				}
				g2, err := requiredParam(p, "gamma_2")
				if err != nil {
					return nil, nil, err
				}
				if te <= 0 {
					return nil, nil, fmt.Errorf("%w: theta_e must be positive", ErrInvalidParameter)
				}
				return sisShear, lenses.CompositeParams{
					lenses.SISParams{EinsteinRadius: te, Center: centerParam(p)},
					lenses.ShearParams{Gamma1: g1, Gamma2: g2},
				}, nil
			},
		},
	}
}

// Resolve builds the deflection field and typed parameters for a model.
func (r *registryRepository) Resolve(model string, params map[string]float64) (*ResolvedLens, error) {
	builder, ok := r.builders[model]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}
	field, typed, err := builder(params)
	if err != nil {
		return nil, err
	}
	return &ResolvedLens{Model: model, Field: field, Params: typed}, nil
}

// Models lists the registered model names in sorted order.
func (r *registryRepository) Models() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func requiredParam(params map[string]float64, key string) (float64, error) {
	v, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingParameter, key)
	}
	return v, nil
}

// centerParam reads the optional lens center, defaulting to the origin.
func centerParam(params map[string]float64) models.Coordinate {
	return models.Coordinate{X: params["center_x"], Y: params["center_y"]}
}
