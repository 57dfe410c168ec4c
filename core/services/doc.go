// Package services is a typed service registry with singleton, scoped and
// transient lifetimes.
//
//	c := services.NewCollection()
//	services.AddInstance(c, settings)
//	services.AddScoped(c, func(r services.Resolver) (*DataService, error) {
//		s, err := services.Resolve[Settings](r)
//		if err != nil {
//			return nil, err
//		}
//		return NewDataService(s), nil
//	})
//	provider := c.Build()
//	defer provider.Close()
//
//	scope := provider.NewScope()
//	defer scope.Close()
//	svc, err := services.Resolve[*DataService](scope)
//
// Services are keyed by their static type. Singleton factories resolve without
// a scope, so a singleton that depends on a scoped service fails with
// ErrScopedFromRoot. Cycles fail with ErrCircular.
package services
