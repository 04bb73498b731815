package providing

// Origin indica de onde veio o dado entregue ao chamador
type Origin string

// Origens possíveis. Stale carrega a causa da falha em Result.Err; empty não é erro.
const (
	OriginRemote    Origin = "remote"
	OriginCache     Origin = "cache"
	OriginStale     Origin = "stale"
	OriginLocal     Origin = "local"
	OriginQueued    Origin = "queued"
	OriginEmpty     Origin = "empty"
	OriginSynthetic Origin = "synthetic"
	OriginFeed      Origin = "feed"
)

// Result distingue "servido em modo degradado" de "falhou"
type Result[T any] struct {
	Data   T      `json:"data"`
	Origin Origin `json:"origin"`
	Err    error  `json:"-"`
}

func Served[T any](data T, origin Origin) Result[T] {
	return Result[T]{Data: data, Origin: origin}
}

// Fallback registra que o dado foi servido no lugar de uma operação que falhou
func Fallback[T any](data T, origin Origin, cause error) Result[T] {
	return Result[T]{Data: data, Origin: origin, Err: cause}
}

func (r Result[T]) Degraded() bool {
	switch r.Origin {
	case OriginStale, OriginLocal, OriginQueued, OriginEmpty:
		return true
	}
	return false
}
