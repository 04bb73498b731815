package providing

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=selector.go -destination=mocks/selector.go -package=mocks

// PreferenceKey guarda o tipo de provedor escolhido pelo usuário
const PreferenceKey = "dataProvider:type"

// Factory constrói uma instância nova do provedor
type Factory func(ctx context.Context) (DataProvider, error)

// PreferenceStore persiste a escolha de provedor entre reinícios
type PreferenceStore interface {
	GetValue(ctx context.Context, key string, dest any) (bool, error)
	SetValue(ctx context.Context, key string, value any) error
}

// Selector mantém no máximo uma instância de provedor ativa. A ordem de
// resolução é: tipo explícito, preferência persistida, padrão do ambiente e
// por fim o híbrido.
type Selector struct {
	mu         sync.Mutex
	factories  map[ProviderType]Factory
	prefs      PreferenceStore
	envDefault string
	active     DataProvider
	activeType ProviderType
}

func NewSelector(factories map[ProviderType]Factory, prefs PreferenceStore, envDefault string) *Selector {
	return &Selector{
		factories:  factories,
		prefs:      prefs,
		envDefault: envDefault,
	}
}

// Provider retorna o provedor ativo, construindo-o quando necessário.
// Um tipo explícito vazio segue a ordem de resolução padrão.
func (s *Selector) Provider(ctx context.Context, explicit ProviderType) (DataProvider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	providerType := explicit
	if providerType == "" {
		providerType = s.resolve(ctx)
	} else if _, ok := ParseProviderType(string(providerType)); !ok {
		return nil, &ProviderError{Kind: ErrUnknownProvider, Details: string(explicit)}
	}

	if s.active != nil && s.activeType == providerType {
		return s.active, nil
	}

	factory, ok := s.factories[providerType]
	if !ok {
		return nil, &ProviderError{Kind: ErrUnknownProvider, Details: fmt.Sprintf("%s não está registrado", providerType)}
	}

	provider, err := factory(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir provedor %s: %w", providerType, err)
	}

	s.discard()
	s.active = provider
	s.activeType = providerType

	logrus.WithField("provider", providerType).Info("Provedor de dados ativo")

	return provider, nil
}

// SetType persiste a preferência e descarta a instância atual
func (s *Selector) SetType(ctx context.Context, providerType ProviderType) error {
	if _, ok := ParseProviderType(string(providerType)); !ok {
		return &ProviderError{Kind: ErrUnknownProvider, Details: string(providerType)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.prefs != nil {
		if err := s.prefs.SetValue(ctx, PreferenceKey, string(providerType)); err != nil {
			return NewLocalStoreError("salvar preferência de provedor", err)
		}
	}

	s.discard()
	return nil
}

// ActiveType retorna o tipo da instância ativa, vazio se nenhuma foi construída
func (s *Selector) ActiveType() ProviderType {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.activeType
}

// ResolvedType retorna o tipo que seria usado sem argumento explícito
func (s *Selector) ResolvedType(ctx context.Context) ProviderType {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.resolve(ctx)
}

func (s *Selector) resolve(ctx context.Context) ProviderType {
	if s.prefs != nil {
		var stored string
		found, err := s.prefs.GetValue(ctx, PreferenceKey, &stored)
		switch {
		case err != nil:
			logrus.WithError(err).Warn("Erro ao ler preferência de provedor, ignorando")
		case found:
			if t, ok := ParseProviderType(stored); ok {
				return t
			}
			logrus.WithField("provider", stored).Warn("Preferência de provedor inválida, ignorando")
		}
	}

	if s.envDefault != "" {
		if t, ok := ParseProviderType(s.envDefault); ok {
			return t
		}
		logrus.WithField("provider", s.envDefault).Warn("DATA_PROVIDER inválido, usando híbrido")
	}

	return TypeHybrid
}

func (s *Selector) discard() {
	if closer, ok := s.active.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao encerrar provedor anterior")
		}
	}

	s.active = nil
	s.activeType = ""
}
