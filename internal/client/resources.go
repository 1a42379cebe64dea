package client

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/condohub/condoctl/internal/model"
)

// Per-resource aliases keep call sites readable.
type (
	Avisos    = Resource[model.Aviso, model.CreateAvisoDTO, model.UpdateAvisoDTO]
	Denuncias = Resource[model.Denuncia, model.CreateDenunciaDTO, model.UpdateDenunciaDTO]
	Eventos   = Resource[model.Evento, model.CreateEventoDTO, model.UpdateEventoDTO]
	Moradores = Resource[model.Usuario, model.CreateUsuarioDTO, model.UpdateUsuarioDTO]
)

func NewAvisos(c *Client) *Avisos {
	return NewResource[model.Aviso, model.CreateAvisoDTO, model.UpdateAvisoDTO](c, "avisos", "/avisos")
}

// NewDenuncias targets /denuncia; the backend never pluralized this path.
func NewDenuncias(c *Client) *Denuncias {
	return NewResource[model.Denuncia, model.CreateDenunciaDTO, model.UpdateDenunciaDTO](c, "denuncias", "/denuncia")
}

func NewEventos(c *Client) *Eventos {
	return NewResource[model.Evento, model.CreateEventoDTO, model.UpdateEventoDTO](c, "eventos", "/eventos")
}

func NewMoradores(c *Client) *Moradores {
	return NewResource[model.Usuario, model.CreateUsuarioDTO, model.UpdateUsuarioDTO](c, "moradores", "/usuarios")
}

const categoriasCacheKey = "categorias:all"

// Categorias wraps the read-mostly categories endpoint with a short TTL
// cache, so the denuncia form does not refetch the list on every open.
type Categorias struct {
	res   *Resource[model.Categoria, model.CreateCategoriaDTO, model.CreateCategoriaDTO]
	cache *gocache.Cache
}

func NewCategorias(c *Client) *Categorias {
	return &Categorias{
		res:   NewResource[model.Categoria, model.CreateCategoriaDTO, model.CreateCategoriaDTO](c, "categorias", "/categorias"),
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *Categorias) ListAll(ctx context.Context) ([]model.Categoria, error) {
	if cached, ok := s.cache.Get(categoriasCacheKey); ok {
		return cached.([]model.Categoria), nil
	}
	categorias, err := s.res.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(categoriasCacheKey, categorias, gocache.DefaultExpiration)
	return categorias, nil
}

func (s *Categorias) Create(ctx context.Context, draft model.CreateCategoriaDTO) (model.Categoria, error) {
	categoria, err := s.res.Create(ctx, draft)
	if err == nil {
		s.cache.Delete(categoriasCacheKey)
	}
	return categoria, err
}
