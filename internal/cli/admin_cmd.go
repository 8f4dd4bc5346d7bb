package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/punchclock/internal/cli/formatter"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func resolveUserID(ctx context.Context, s *State, input string) (string, error) {
	users, err := s.App.Users.List(ctx)
	if err != nil {
		return "", err
	}
	for _, u := range users {
		if u.Email == input {
			return u.ID, nil
		}
	}
	return resolveID("user", input, users, func(u *domain.User) string { return u.ID })
}

func resolveProjectID(ctx context.Context, s *State, input string) (string, error) {
	projects, err := s.App.Projects.ListProjects(ctx)
	if err != nil {
		return "", err
	}
	return resolveID("project", input, projects, func(p *domain.Project) string { return p.ID })
}

func resolveTaskID(ctx context.Context, s *State, input string) (string, error) {
	tasks, err := s.App.Projects.ListTasks(ctx, "")
	if err != nil {
		return "", err
	}
	return resolveID("task", input, tasks, func(t *domain.Task) string { return t.ID })
}

// optionalFlag returns a pointer to value when the flag was set.
func optionalFlag(flags *pflag.FlagSet, name, value string) *string {
	if !flags.Changed(name) {
		return nil
	}
	return &value
}

func newUserCmd(s *State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users (admin)",
	}
	cmd.AddCommand(newUserAddCmd(s), newUserListCmd(s), newUserUpdateCmd(s))
	return cmd
}

func newUserAddCmd(s *State) *cobra.Command {
	var email, name, password, role string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := s.adminIdentity(ctx); err != nil {
				return err
			}
			if password == "" && s.IsInteractive() {
				err := huh.NewForm(huh.NewGroup(
					huh.NewInput().
						Title("Password").
						EchoMode(huh.EchoModePassword).
						Value(&password).
						Validate(requiredText("password")),
				)).WithTheme(punchclockHuhTheme()).WithShowHelp(false).Run()
				if err != nil {
					return err
				}
			}
			u, err := s.App.Users.Create(ctx, service.CreateUserInput{
				Email:    email,
				Name:     name,
				Password: password,
				Role:     domain.Role(role),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s [%s]\n", u.Role, u.Email, formatter.ShortID(u.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&password, "password", "", "Initial password (prompted when omitted)")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleEmployee), "Role: employee or admin")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newUserListCmd(s *State) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := s.adminIdentity(ctx); err != nil {
				return err
			}
			users, err := s.App.Users.List(ctx)
			if err != nil {
				return err
			}
			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No users found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatUserList(users))
			return nil
		},
	}
}

func newUserUpdateCmd(s *State) *cobra.Command {
	var email, name, password, role, status string

	cmd := &cobra.Command{
		Use:   "update ID|EMAIL",
		Short: "Change a user's details, role or status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := s.adminIdentity(ctx); err != nil {
				return err
			}
			id, err := resolveUserID(ctx, s, args[0])
			if err != nil {
				return err
			}
			in := service.UpdateUserInput{
				Email:    optionalFlag(cmd.Flags(), "email", email),
				Name:     optionalFlag(cmd.Flags(), "name", name),
				Password: optionalFlag(cmd.Flags(), "password", password),
			}
			if cmd.Flags().Changed("role") {
				r := domain.Role(role)
				in.Role = &r
			}
			if cmd.Flags().Changed("status") {
				st := domain.UserStatus(status)
				in.Status = &st
			}
			u, err := s.App.Users.Update(ctx, id, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s, %s)\n", u.Email, u.Role, u.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "New email")
	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().StringVar(&password, "password", "", "New password")
	cmd.Flags().StringVar(&role, "role", "", "employee or admin")
	cmd.Flags().StringVar(&status, "status", "", "active or inactive")
	return cmd
}

func newProjectCmd(s *State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(newProjectAddCmd(s), newProjectListCmd(s), newProjectUpdateCmd(s))
	return cmd
}

func newProjectAddCmd(s *State) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			admin, err := s.adminIdentity(ctx)
			if err != nil {
				return err
			}
			p, err := s.App.Projects.CreateProject(ctx, admin.UserID, service.ProjectInput{
				Name:        name,
				Description: optionalFlag(cmd.Flags(), "description", description),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Name, formatter.ShortID(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectListCmd(s *State) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := s.App.Projects.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectUpdateCmd(s *State) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Rename a project or change its description (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := s.adminIdentity(ctx); err != nil {
				return err
			}
			id, err := resolveProjectID(ctx, s, args[0])
			if err != nil {
				return err
			}
			p, err := s.App.Projects.UpdateProject(ctx, id, service.ProjectInput{
				Name:        name,
				Description: optionalFlag(cmd.Flags(), "description", description),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newTaskCmd(s *State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(newTaskAddCmd(s), newTaskListCmd(s), newTaskUpdateCmd(s))
	return cmd
}

func newTaskAddCmd(s *State) *cobra.Command {
	var name, description, project string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task under a project (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := s.adminIdentity(ctx); err != nil {
				return err
			}
			projectID, err := resolveProjectID(ctx, s, project)
			if err != nil {
				return err
			}
			t, err := s.App.Projects.CreateTask(ctx, service.TaskInput{
				Name:        name,
				Description: optionalFlag(cmd.Flags(), "description", description),
				ProjectID:   projectID,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s [%s]\n", t.Name, formatter.ShortID(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newTaskListCmd(s *State) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID := ""
			if project != "" {
				var err error
				if projectID, err = resolveProjectID(ctx, s, project); err != nil {
					return err
				}
			}
			tasks, err := s.App.Projects.ListTasks(ctx, projectID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Only tasks of this project")
	return cmd
}

func newTaskUpdateCmd(s *State) *cobra.Command {
	var name, description, project string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Rename or move a task (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := s.adminIdentity(ctx); err != nil {
				return err
			}
			id, err := resolveTaskID(ctx, s, args[0])
			if err != nil {
				return err
			}
			in := service.TaskInput{Name: name, Description: optionalFlag(cmd.Flags(), "description", description)}
			if project != "" {
				if in.ProjectID, err = resolveProjectID(ctx, s, project); err != nil {
					return err
				}
			}
			t, err := s.App.Projects.UpdateTask(ctx, id, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", t.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&project, "project", "", "Move to this project")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
