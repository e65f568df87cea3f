package core

// StaticRouter 설정으로 고정된 (app, operation) 라우팅 테이블
type StaticRouter struct {
	routes map[string]map[string]struct{}
}

func NewStaticRouter(routes map[string][]string) *StaticRouter {
	r := &StaticRouter{routes: make(map[string]map[string]struct{}, len(routes))}
	for app, ops := range routes {
		set := make(map[string]struct{}, len(ops))
		for _, op := range ops {
			set[op] = struct{}{}
		}
		r.routes[app] = set
	}
	return r
}

func (r *StaticRouter) IsExist(app, operation string) bool {
	ops, ok := r.routes[app]
	if !ok {
		return false
	}
	_, ok = ops[operation]
	return ok
}
