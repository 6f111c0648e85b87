package credit

import domain "github.com/BruksfildServices01/estate-listings/internal/domain/credit"

type ListPlans struct{}

func NewListPlans() *ListPlans {
	return &ListPlans{}
}

func (uc *ListPlans) Execute() []domain.Plan {
	return domain.Plans()
}

func (uc *ListPlans) Find(id string) (domain.Plan, bool) {
	return domain.FindPlan(id)
}
