package service

const (
	MaxPayoffMonths       = 600  // 50 años
	BalanceTolerance      = 0.01 // tolerancia para considerar deuda pagada
	DivergenceGraceMonths = 12   // meses observados antes de declarar que la deuda crece
	MaxCompareScenarios   = 20   // máximo de capacidades por comparación

	AllPaidOffLabel = "All paid off"
)
