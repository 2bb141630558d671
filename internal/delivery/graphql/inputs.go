package graphql

import (
	"accounts/internal/domain/repository"
	"accounts/internal/usecase"

	graphqlgo "github.com/graph-gophers/graphql-go"
)

type idArgs struct {
	ID graphqlgo.ID `json:"id" validate:"required"`
}

type queryUserInput struct {
	ID    *graphqlgo.ID `json:"id" validate:"omitnil,min=1"`
	Name  *string       `json:"name" validate:"omitnil,min=1"`
	Email *string       `json:"email" validate:"omitnil,email"`
}

func (in *queryUserInput) isEmpty() bool {
	return in.ID == nil && in.Name == nil && in.Email == nil
}

func (in *queryUserInput) toFilter() (repository.UserFilter, error) {
	filter := repository.UserFilter{
		Name:  in.Name,
		Email: in.Email,
	}
	if in.ID != nil {
		id, err := parseID(*in.ID)
		if err != nil {
			return repository.UserFilter{}, err
		}
		filter.ID = &id
	}

	return filter, nil
}

type userQueryArgs struct {
	Query queryUserInput `json:"query"`
}

type createUserInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72"`
}

func (in *createUserInput) toUsecase() *usecase.CreateUserInput {
	return &usecase.CreateUserInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	}
}

type createUserArgs struct {
	Data createUserInput `json:"data"`
}

type updateUserInput struct {
	Name     *string `json:"name" validate:"omitnil,min=1,max=100"`
	Email    *string `json:"email" validate:"omitnil,email,max=255"`
	Password *string `json:"password" validate:"omitnil,min=8,maxbytes=72"`
}

func (in *updateUserInput) toUsecase() *usecase.UpdateUserInput {
	return &usecase.UpdateUserInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	}
}

type updateUserArgs struct {
	ID   graphqlgo.ID    `json:"id" validate:"required"`
	Data updateUserInput `json:"data"`
}

type authInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (in *authInput) toUsecase() *usecase.LoginInput {
	return &usecase.LoginInput{
		Email:    in.Email,
		Password: in.Password,
	}
}

type loginArgs struct {
	Data authInput `json:"data"`
}
