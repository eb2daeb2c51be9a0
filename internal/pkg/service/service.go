package service

type Service struct {
	Authorization Authorization
	Tenant        Tenant
	Menu          Menu
	Cart          Cart
	Order         Order
	Payment       Payment
}

type Dependencies struct {
	Authorization Authorization
	Tenant        Tenant
	Menu          Menu
	Cart          Cart
	Order         Order
	Payment       Payment
}

func NewService(deps Dependencies) *Service {
	return &Service{
		Authorization: deps.Authorization,
		Tenant:        deps.Tenant,
		Menu:          deps.Menu,
		Cart:          deps.Cart,
		Order:         deps.Order,
		Payment:       deps.Payment,
	}
}
