package http

import (
	"sparkz/internal/entity"
	"sparkz/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// MockCatalogUseCase is a mock implementation of CatalogUseCase
type MockCatalogUseCase struct {
	mock.Mock
}

func (m *MockCatalogUseCase) AddProject(input usecase.AddProjectInput) (*entity.Project, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Project), args.Error(1)
}

func (m *MockCatalogUseCase) GetProject(id string) (*entity.Project, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Project), args.Error(1)
}

func (m *MockCatalogUseCase) LikeProject(id string) {
	m.Called(id)
}

func (m *MockCatalogUseCase) RecordDonation(id string, amount float64) {
	m.Called(id, amount)
}

func (m *MockCatalogUseCase) Query(category entity.Category, search string) []*entity.Project {
	args := m.Called(category, search)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*entity.Project)
}

func (m *MockCatalogUseCase) Page(projects []*entity.Project, page, pageSize int) ([]*entity.Project, int) {
	args := m.Called(projects, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1)
	}
	return args.Get(0).([]*entity.Project), args.Int(1)
}

var _ usecase.CatalogUseCase = (*MockCatalogUseCase)(nil)

// MockIdentityUseCase is a mock implementation of IdentityUseCase
type MockIdentityUseCase struct {
	mock.Mock
}

func (m *MockIdentityUseCase) Login(email, name string) (*entity.User, string, error) {
	args := m.Called(email, name)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockIdentityUseCase) Register(email, name string) (*entity.User, string, error) {
	args := m.Called(email, name)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockIdentityUseCase) Logout() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockIdentityUseCase) UpgradeToDeveloper() (*entity.User, string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockIdentityUseCase) Current() *entity.User {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*entity.User)
}

var _ usecase.IdentityUseCase = (*MockIdentityUseCase)(nil)

// MockDonationUseCase is a mock implementation of DonationUseCase
type MockDonationUseCase struct {
	mock.Mock
}

func (m *MockDonationUseCase) Open(targetID string, amount float64, donorName string) (*entity.DonationFlow, error) {
	args := m.Called(targetID, amount, donorName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DonationFlow), args.Error(1)
}

func (m *MockDonationUseCase) Confirm(flowID string) (*entity.DonationFlow, error) {
	args := m.Called(flowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DonationFlow), args.Error(1)
}

func (m *MockDonationUseCase) Cancel(flowID string) error {
	args := m.Called(flowID)
	return args.Error(0)
}

func (m *MockDonationUseCase) Get(flowID string) (*entity.DonationFlow, error) {
	args := m.Called(flowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DonationFlow), args.Error(1)
}

var _ usecase.DonationUseCase = (*MockDonationUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
