package connectivity

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const DefaultInterval = 30 * time.Second

// Reachability informa se a máquina tem alguma rede disponível
type Reachability func() bool

// RemoteChecker faz uma leitura leve no backend; qualquer erro significa offline
type RemoteChecker func(ctx context.Context) error

type Status struct {
	Online        bool      `json:"online"`
	LastCheckedAt time.Time `json:"last_checked_at"`
}

// Probe decide se o processo está online, reaproveitando o último resultado
// enquanto o intervalo mínimo entre verificações não passou
type Probe struct {
	mu            sync.Mutex
	interval      time.Duration
	reachable     Reachability
	check         RemoteChecker
	now           func() time.Time
	onChange      func(online bool)
	lastCheckedAt time.Time
	online        bool
}

type Option func(*Probe)

func WithInterval(interval time.Duration) Option {
	return func(p *Probe) {
		if interval > 0 {
			p.interval = interval
		}
	}
}

func WithReachability(r Reachability) Option {
	return func(p *Probe) {
		if r != nil {
			p.reachable = r
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Probe) {
		if now != nil {
			p.now = now
		}
	}
}

// WithOnChange registra um callback chamado a cada verificação efetiva
func WithOnChange(fn func(online bool)) Option {
	return func(p *Probe) {
		p.onChange = fn
	}
}

func NewProbe(check RemoteChecker, opts ...Option) *Probe {
	p := &Probe{
		interval:  DefaultInterval,
		reachable: InterfacesUp,
		check:     check,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Online retorna o estado de conectividade, verificando novamente apenas
// quando o intervalo desde a última verificação já passou
func (p *Probe) Online(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if !p.lastCheckedAt.IsZero() && now.Sub(p.lastCheckedAt) < p.interval {
		return p.online
	}

	p.lastCheckedAt = now
	p.online = p.verify(ctx)

	if p.onChange != nil {
		p.onChange(p.online)
	}

	return p.online
}

func (p *Probe) verify(ctx context.Context) bool {
	if !p.reachable() {
		logrus.Debug("Nenhuma interface de rede disponível, considerando offline")
		return false
	}

	if p.check == nil {
		return true
	}

	if err := p.check(ctx); err != nil {
		logrus.WithError(err).Warn("Backend remoto inacessível, considerando offline")
		return false
	}

	return true
}

// Invalidate força uma nova verificação na próxima chamada de Online
func (p *Probe) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lastCheckedAt = time.Time{}
}

func (p *Probe) LastCheckedAt() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.lastCheckedAt
}

func (p *Probe) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Status{Online: p.online, LastCheckedAt: p.lastCheckedAt}
}

// InterfacesUp considera a rede disponível quando existe alguma interface
// ativa, que não seja loopback, com endereço atribuído
func InterfacesUp() bool {
	interfaces, err := net.Interfaces()
	if err != nil {
		return false
	}

	for _, iface := range interfaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err == nil && len(addrs) > 0 {
			return true
		}
	}

	return false
}
