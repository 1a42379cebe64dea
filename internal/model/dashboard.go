package model

// DashboardStats is the aggregate view served by /dashboard/stats.
type DashboardStats struct {
	AvisosAtivos           int            `json:"avisosAtivos"`
	DenunciasAbertas       int            `json:"denunciasAbertas"`
	UsuariosAtivos         int            `json:"usuariosAtivos"`
	TaxaResolucao          float64        `json:"taxaResolucao"`
	DenunciasPorStatus     map[string]int `json:"denunciasPorStatus"`
	DenunciasPorPrioridade map[string]int `json:"denunciasPorPrioridade"`
}
