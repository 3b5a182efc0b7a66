package processo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cecomp/central-compras/internal/model"
	"github.com/cecomp/central-compras/internal/repository"
	"github.com/alicebob/miniredis/v2"
	"github.com/cecomp/central-compras/pkg/database"
	"github.com/cecomp/central-compras/pkg/distributed"
	"github.com/cecomp/central-compras/pkg/metrics"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	admin    = model.Actor{UserID: "u0", UserName: "admin", IsAdmin: true}
	operador = model.Actor{UserID: "u1", UserName: "ana", SectorID: "s1"}
	outro    = model.Actor{UserID: "u2", UserName: "bruno", SectorID: "s2"}
)

type fixture struct {
	svc  *ProcessoService
	db   *gorm.DB
	mods *repository.ModalidadeRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenInMemory(strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	require.NoError(t, db.Create(&[]model.Setor{{ID: "s1", Nome: "CECOMP"}, {ID: "s2", Nome: "Almoxarifado"}}).Error)

	mods := repository.NewModalidadeRepository(db)
	svc := NewProcessoService(db, repository.NewProcessoRepository(db), mods, repository.NewSetorRepository(db), nil, "Início")
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	return &fixture{svc: svc, db: db, mods: mods}
}

func (f *fixture) workflow(t *testing.T, nome string, fases ...string) *model.Modalidade {
	t.Helper()
	m, err := f.mods.CreateWithPhases(context.Background(), nome, fases)
	require.NoError(t, err)
	return m
}

func (f *fixture) count(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.Processo{}).Count(&n).Error)
	return n
}

func request(numero string, modalidadeID uint) model.CreateProcessoRequest {
	return model.CreateProcessoRequest{
		NumeroSEI:     numero,
		Objeto:        "Aquisição de material de expediente",
		ValorPrevisto: decimal.RequireFromString("1500.50"),
		ModalidadeID:  modalidadeID,
	}
}

func TestCreateProcess_InitialPhase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pregao := f.workflow(t, "Pregão", "Recepção", "Análise", "Homologação")
	vazia := f.workflow(t, "Sem fases")

	tests := []struct {
		name         string
		modalidadeID uint
		expected     string
	}{
		{"primeira fase da modalidade", pregao.ID, "Recepção"},
		{"modalidade sem fases", vazia.ID, "Início"},
		{"modalidade inexistente", 9999, "Início"},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := f.svc.CreateProcess(ctx, operador, request(string(rune('A'+i)), tt.modalidadeID))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.FaseAtual)
			assert.Equal(t, "s1", p.SetorOrigemID)
			assert.Equal(t, f.svc.now(), p.DataAutorizacao)
		})
	}
}

func TestCreateProcess_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.workflow(t, "Pregão", "Recepção")

	negative := request("N-1", m.ID)
	negative.ValorPrevisto = decimal.NewFromInt(-1)

	tests := []struct {
		name  string
		actor model.Actor
		input model.CreateProcessoRequest
	}{
		{"numero vazio", operador, request("  ", m.ID)},
		{"objeto vazio", operador, model.CreateProcessoRequest{NumeroSEI: "X", Objeto: " ", ModalidadeID: m.ID}},
		{"valor negativo", operador, negative},
		{"ator sem setor", model.Actor{UserID: "u9"}, request("S-1", m.ID)},
		{"setor inexistente", model.Actor{UserID: "u0", IsAdmin: true}, func() model.CreateProcessoRequest {
			r := request("S-2", m.ID)
			r.SetorOrigemID = "nao-existe"
			return r
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateProcess(ctx, tt.actor, tt.input)
			assert.ErrorIs(t, err, model.ErrValidation)
		})
	}
	assert.Zero(t, f.count(t))
}

func TestCreateProcess_Duplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.workflow(t, "Pregão", "Recepção")

	_, err := f.svc.CreateProcess(ctx, operador, request("23000.000001/2024-01", m.ID))
	require.NoError(t, err)

	before := testutil.ToFloat64(metrics.ProcessesCreated.WithLabelValues("duplicate"))
	_, err = f.svc.CreateProcess(ctx, outro, request(" 23000.000001/2024-01 ", m.ID))
	assert.ErrorIs(t, err, model.ErrDuplicate)
	assert.Contains(t, err.Error(), "Número SEI já cadastrado")
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ProcessesCreated.WithLabelValues("duplicate")))
	assert.Equal(t, int64(1), f.count(t))
}

func TestCreateProcess_AdminChoosesSector(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.workflow(t, "Pregão", "Recepção")

	r := request("ADM-1", m.ID)
	r.SetorOrigemID = "s2"
	p, err := f.svc.CreateProcess(ctx, admin, r)
	require.NoError(t, err)
	assert.Equal(t, "s2", p.SetorOrigemID)

	// operador não escolhe setor
	r = request("OP-1", m.ID)
	r.SetorOrigemID = "s2"
	p, err = f.svc.CreateProcess(ctx, operador, r)
	require.NoError(t, err)
	assert.Equal(t, "s1", p.SetorOrigemID)
}

func TestTransitionPhase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.workflow(t, "Pregão", "Recepção", "Análise", "Homologação")
	created, err := f.svc.CreateProcess(ctx, operador, request("T-1", m.ID))
	require.NoError(t, err)

	t.Run("move para outra fase e preserva os demais campos", func(t *testing.T) {
		p, err := f.svc.TransitionPhase(ctx, operador, created.ID, model.TransitionRequest{FaseAtual: "Análise"})
		require.NoError(t, err)
		assert.Equal(t, "Análise", p.FaseAtual)

		got, err := f.svc.GetProcess(ctx, operador, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Análise", got.FaseAtual)
		assert.Equal(t, created.NumeroSEI, got.NumeroSEI)
		assert.Equal(t, created.Objeto, got.Objeto)
		assert.True(t, created.ValorPrevisto.Equal(got.ValorPrevisto))
		assert.Equal(t, "CECOMP", got.SetorNome)
		assert.Equal(t, "Pregão", got.ModalidadeNome)

		movs, err := f.svc.ListMovements(ctx, operador, created.ID)
		require.NoError(t, err)
		require.Len(t, movs, 1)
		assert.Equal(t, "Recepção", movs[0].FaseAnterior)
		assert.Equal(t, "Análise", movs[0].FaseNova)
		assert.Equal(t, "u1", movs[0].UsuarioID)
	})

	t.Run("atualiza objeto e valor junto com a fase", func(t *testing.T) {
		objeto := "Objeto revisado"
		valor := decimal.RequireFromString("2000")
		p, err := f.svc.TransitionPhase(ctx, operador, created.ID, model.TransitionRequest{
			FaseAtual: "Homologação", Objeto: &objeto, ValorPrevisto: &valor,
		})
		require.NoError(t, err)
		assert.Equal(t, "Objeto revisado", p.Objeto)
		assert.True(t, valor.Equal(p.ValorPrevisto))
	})

	t.Run("mesma fase sem alteração não gera movimentação", func(t *testing.T) {
		_, err := f.svc.TransitionPhase(ctx, operador, created.ID, model.TransitionRequest{FaseAtual: "Homologação"})
		require.NoError(t, err)
		movs, err := f.svc.ListMovements(ctx, operador, created.ID)
		require.NoError(t, err)
		assert.Len(t, movs, 2)
	})

	t.Run("fase fora da modalidade", func(t *testing.T) {
		_, err := f.svc.TransitionPhase(ctx, operador, created.ID, model.TransitionRequest{FaseAtual: "Contrato"})
		assert.ErrorIs(t, err, model.ErrValidation)
		assert.ErrorIs(t, err, model.ErrPhaseNotInWorkflow)

		got, err := f.svc.GetProcess(ctx, operador, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Homologação", got.FaseAtual)
	})

	t.Run("fase vazia", func(t *testing.T) {
		_, err := f.svc.TransitionPhase(ctx, operador, created.ID, model.TransitionRequest{FaseAtual: " "})
		assert.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("processo inexistente", func(t *testing.T) {
		_, err := f.svc.TransitionPhase(ctx, operador, 9999, model.TransitionRequest{FaseAtual: "Análise"})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("processo de outro setor", func(t *testing.T) {
		_, err := f.svc.TransitionPhase(ctx, outro, created.ID, model.TransitionRequest{FaseAtual: "Análise"})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestListProcesses_Scope(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.workflow(t, "Pregão", "Recepção")

	for _, c := range []struct {
		actor  model.Actor
		numero string
	}{{operador, "S1-1"}, {operador, "S1-2"}, {outro, "S2-1"}} {
		_, err := f.svc.CreateProcess(ctx, c.actor, request(c.numero, m.ID))
		require.NoError(t, err)
	}

	tests := []struct {
		name  string
		actor model.Actor
		total int64
	}{
		{"administrador vê todos", admin, 3},
		{"operador do s1", operador, 2},
		{"operador do s2", outro, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := f.svc.ListProcesses(ctx, tt.actor, model.ProcessoFilter{})
			require.NoError(t, err)
			assert.Equal(t, tt.total, total)
			assert.Len(t, items, int(tt.total))
			for _, it := range items {
				assert.True(t, tt.actor.CanAccessSector(it.SetorOrigemID))
			}
		})
	}

	items, total, err := f.svc.ListProcesses(ctx, admin, model.ProcessoFilter{Limit: 1, Skip: -5})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 1)
}

func TestAvailablePhasesAndScope(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.workflow(t, "Pregão", "Recepção", "Análise")
	p, err := f.svc.CreateProcess(ctx, operador, request("AP-1", m.ID))
	require.NoError(t, err)

	fases, err := f.svc.AvailablePhases(ctx, operador, p.ID)
	require.NoError(t, err)
	require.Len(t, fases, 2)
	assert.Equal(t, "Recepção", fases[0].Nome)
	assert.Equal(t, "Análise", fases[1].Nome)

	_, err = f.svc.AvailablePhases(ctx, outro, p.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = f.svc.GetProcess(ctx, outro, p.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = f.svc.ListMovements(ctx, outro, p.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = f.svc.GetProcess(ctx, admin, p.ID)
	assert.NoError(t, err)
}

// failCreate faz o insert na tabela falhar dentro da transação
func failCreate(t *testing.T, db *gorm.DB, table string, err error) {
	t.Helper()
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(err)
		}
	}))
}

func TestTransitionPhase_MovementFailureKeepsPhase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.workflow(t, "Pregão", "Recepção", "Análise")
	p, err := f.svc.CreateProcess(ctx, operador, request("RB-1", m.ID))
	require.NoError(t, err)

	failCreate(t, f.db, "processo_movimentacoes", errors.New("boom"))

	_, err = f.svc.TransitionPhase(ctx, operador, p.ID, model.TransitionRequest{FaseAtual: "Análise"})
	assert.ErrorIs(t, err, model.ErrPersistence)

	got, err := f.svc.GetProcess(ctx, operador, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Recepção", got.FaseAtual)

	var movs int64
	require.NoError(t, f.db.Model(&model.ProcessoMovimentacao{}).Count(&movs).Error)
	assert.Zero(t, movs)
}

func TestCreateProcess_UniqueViolationIsDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.workflow(t, "Pregão", "Recepção")

	// a verificação prévia passa; o banco rejeita a linha
	failCreate(t, f.db, "processos", gorm.ErrDuplicatedKey)

	before := testutil.ToFloat64(metrics.ProcessesCreated.WithLabelValues("duplicate"))
	_, err := f.svc.CreateProcess(ctx, operador, request("UV-1", m.ID))
	assert.ErrorIs(t, err, model.ErrDuplicate)
	assert.NotErrorIs(t, err, model.ErrPersistence)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ProcessesCreated.WithLabelValues("duplicate")))
	assert.Zero(t, f.count(t))
}

func TestCreateProcess_WithRedisLock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.workflow(t, "Pregão", "Recepção")

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	f.svc.locker = distributed.NewLocker(client, 100*time.Millisecond)

	t.Run("libera o lock após cadastrar", func(t *testing.T) {
		_, err := f.svc.CreateProcess(ctx, operador, request("LK-1", m.ID))
		require.NoError(t, err)
		assert.False(t, mr.Exists("processo:sei:LK-1"))
	})

	t.Run("lock de outra instância vira conflito", func(t *testing.T) {
		require.NoError(t, mr.Set("processo:sei:LK-2", "outra-instancia"))

		_, err := f.svc.CreateProcess(ctx, operador, request("LK-2", m.ID))
		assert.ErrorIs(t, err, model.ErrConflict)

		exists, err := f.svc.processos.ExistsByNumeroSEI(ctx, "LK-2")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
