package adapter

import (
	"context"

	"github.com/Cyclone1070/workbench/internal/workspace"
)

// InitProjectRequest names the workspace to create or reopen.
// The name is sanitised; an empty name falls back to the default project name.
type InitProjectRequest struct {
	ProjectName string `json:"project_name" mapstructure:"project_name"`
}

type InitProjectResponse struct {
	Name string `json:"name"`
	Root string `json:"root"`
}

type ListProjectsRequest struct{}

type ListProjectsResponse struct {
	Projects []string `json:"projects"`
}

type CurrentDirectoryRequest struct{}

type CurrentDirectoryResponse struct {
	Root string `json:"root"`
	Name string `json:"name"`
}

func initProject(ws *workspace.Context) Runner[InitProjectRequest, InitProjectResponse] {
	return func(_ context.Context, req *InitProjectRequest) (*InitProjectResponse, error) {
		root, err := ws.Initialize(req.ProjectName)
		if err != nil {
			return nil, err
		}
		return &InitProjectResponse{Name: ws.Name(), Root: root}, nil
	}
}

func listProjects(registry *workspace.Registry) Runner[ListProjectsRequest, ListProjectsResponse] {
	return func(_ context.Context, _ *ListProjectsRequest) (*ListProjectsResponse, error) {
		names, err := registry.List()
		if err != nil {
			return nil, err
		}
		return &ListProjectsResponse{Projects: names}, nil
	}
}

func currentDirectory(ws *workspace.Context) Runner[CurrentDirectoryRequest, CurrentDirectoryResponse] {
	return func(_ context.Context, _ *CurrentDirectoryRequest) (*CurrentDirectoryResponse, error) {
		root, err := ws.Current()
		if err != nil {
			return nil, err
		}
		return &CurrentDirectoryResponse{Root: root, Name: ws.Name()}, nil
	}
}
