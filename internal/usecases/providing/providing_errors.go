package providing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vfg2006/agency-data-api/internal/domain"
)

// Erros específicos da camada de acesso a dados
var (
	// Configuração externa obrigatória ausente (ex.: id da planilha)
	ErrConfiguration = errors.New("configuração obrigatória ausente")
	// Dados recebidos sem um campo obrigatório
	ErrValidation = errors.New("dados inválidos")
	// Consulta ou escrita no backend remoto falhou
	ErrRemote = errors.New("falha no backend remoto")
	// Um item da fila offline não pôde ser enviado
	ErrSyncItem = errors.New("falha ao sincronizar item")
	// Leitura ou escrita no armazenamento local falhou
	ErrLocalStore = errors.New("falha no armazenamento local")
	// Tipo de provedor não registrado no seletor
	ErrUnknownProvider = errors.New("provedor de dados desconhecido")
	// Operação não suportada pelo provedor ativo
	ErrUnsupported = errors.New("operação não suportada pelo provedor")
	// Registro inexistente
	ErrNotFound = errors.New("registro não encontrado")
)

// ProviderError é um erro com contexto adicional sobre a tabela, o campo e a operação
type ProviderError struct {
	Kind      error  // Um dos erros sentinela acima
	Table     string // Tabela ou coleção envolvida (quando aplicável)
	Field     string // Campo envolvido (quando aplicável)
	Operation string // Operação do provedor
	Details   string // Detalhes adicionais
	Err       error  // Causa original
}

// Error implementa a interface error
func (e *ProviderError) Error() string {
	parts := []string{e.Kind.Error()}

	if e.Field != "" && e.Table != "" {
		parts = append(parts, fmt.Sprintf("campo %q na tabela %q", e.Field, e.Table))
	} else if e.Field != "" {
		parts = append(parts, fmt.Sprintf("campo %q", e.Field))
	} else if e.Table != "" {
		parts = append(parts, fmt.Sprintf("tabela %q", e.Table))
	}

	if e.Operation != "" {
		parts = append(parts, "operação "+e.Operation)
	}
	if e.Details != "" {
		parts = append(parts, e.Details)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	return strings.Join(parts, ": ")
}

// Unwrap permite errors.Is tanto para o tipo quanto para a causa
func (e *ProviderError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewConfigurationError indica uma configuração obrigatória ausente
func NewConfigurationError(field, details string) *ProviderError {
	return &ProviderError{Kind: ErrConfiguration, Field: field, Details: details}
}

// NewValidationError indica um campo obrigatório ausente ou inválido em uma tabela
func NewValidationError(table, field, details string) *ProviderError {
	return &ProviderError{Kind: ErrValidation, Table: table, Field: field, Details: details}
}

// NewRemoteError embrulha a falha de uma operação remota
func NewRemoteError(operation string, err error) *ProviderError {
	return &ProviderError{Kind: ErrRemote, Operation: operation, Err: err}
}

// NewSyncItemError indica que um item da fila não foi enviado
func NewSyncItemError(table, id string, err error) *ProviderError {
	return &ProviderError{Kind: ErrSyncItem, Table: table, Details: "id " + id, Err: err}
}

// NewLocalStoreError embrulha a falha do armazenamento local
func NewLocalStoreError(operation string, err error) *ProviderError {
	return &ProviderError{Kind: ErrLocalStore, Operation: operation, Err: err}
}

// IsFatal indica erros que nunca devem ser mascarados por fallback
func IsFatal(err error) bool {
	return errors.Is(err, ErrConfiguration) || errors.Is(err, ErrValidation)
}

// ValidateOptimization barra a otimização sem cliente antes de qualquer escrita,
// remota ou na fila offline
func ValidateOptimization(o domain.Optimization) error {
	if strings.TrimSpace(o.ClientID) == "" {
		return NewValidationError("optimizations", "client_id", "valor obrigatório vazio")
	}
	return nil
}
