package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dd0wney/socialgraph/pkg/service"
	"github.com/dd0wney/socialgraph/pkg/storage"
	"github.com/dd0wney/socialgraph/pkg/validation"
)

func newStudentsCmd(a *app) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "students",
		Short: "List students, optionally filtered by a search term",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open()
			if err != nil {
				return err
			}
			students := svc.Students()
			if search != "" {
				students = svc.Search(search)
			}
			if len(students) == 0 {
				fmt.Fprintln(a.out, "No students found.")
				return nil
			}

			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tINTERESTS")
			for _, s := range students {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Category, strings.Join(s.Interests, ", "))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive match on name or category")
	return cmd
}

func newStudentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "student",
		Short: "Show, add, update or remove a student",
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a student's profile, centrality and suggested friends",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open()
			if err != nil {
				return err
			}
			sr, err := svc.StudentReport(args[0])
			if err != nil {
				return err
			}
			return sr.WriteText(a.out)
		},
	}

	var interests []string
	add := &cobra.Command{
		Use:   "add <id> <name> <category>",
		Short: "Register a new student",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(func(svc *service.Service) error {
				req := validation.StudentRequest{ID: args[0], Name: args[1], Category: args[2], Interests: interests}
				if err := svc.AddStudent(req); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "✅ Added student %s (%s)\n", req.ID, req.Name)
				return nil
			})
		},
	}
	add.Flags().StringSliceVarP(&interests, "interest", "i", nil, "interest, repeatable or comma separated")

	var name, category string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a student's name or category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(func(svc *service.Service) error {
				if err := svc.UpdateStudent(args[0], name, category); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "✅ Updated student %s\n", args[0])
				return nil
			})
		},
	}
	update.Flags().StringVar(&name, "name", "", "new name, empty keeps the current one")
	update.Flags().StringVar(&category, "category", "", "new category, empty keeps the current one")

	remove := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a student and all their friendships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(func(svc *service.Service) error {
				if err := svc.RemoveStudent(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "✅ Removed student %s\n", args[0])
				return nil
			})
		},
	}

	cmd.AddCommand(show, add, update, remove)
	return cmd
}

func newInterestCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interest",
		Short: "Add or remove a student's interest",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <id> <interest>",
			Short: "Add an interest to a student",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.mutate(func(svc *service.Service) error {
					if err := svc.AddInterest(args[0], args[1]); err != nil {
						return err
					}
					fmt.Fprintf(a.out, "✅ %s now likes %s\n", args[0], args[1])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "remove <id> <interest>",
			Short: "Remove an interest from a student",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.mutate(func(svc *service.Service) error {
					if err := svc.RemoveInterest(args[0], args[1]); err != nil {
						return err
					}
					fmt.Fprintf(a.out, "✅ Removed %s from %s\n", args[1], args[0])
					return nil
				})
			},
		},
	)
	return cmd
}

func newFriendshipCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "friendship",
		Aliases: []string{"friendships"},
		Short:   "Add, reweight or remove a friendship",
	}

	var weight int
	add := &cobra.Command{
		Use:   "add <id1> <id2>",
		Short: "Connect two students; an existing friendship takes the new weight",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(func(svc *service.Service) error {
				req := validation.FriendshipRequest{StudentA: args[0], StudentB: args[1], Weight: weight}
				if err := svc.AddFriendship(req); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "✅ %s and %s are friends (%s)\n", args[0], args[1], storage.Weight(weight))
				return nil
			})
		},
	}
	add.Flags().IntVarP(&weight, "weight", "w", int(storage.WeightNormal), "1 normal, 2 close, 3 closest")

	var newWeight int
	update := &cobra.Command{
		Use:   "update <id1> <id2>",
		Short: "Change the weight of an existing friendship",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(func(svc *service.Service) error {
				w := storage.Weight(newWeight)
				if err := svc.UpdateFriendshipWeight(args[0], args[1], w); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "✅ %s - %s is now %s\n", args[0], args[1], w)
				return nil
			})
		},
	}
	update.Flags().IntVarP(&newWeight, "weight", "w", int(storage.WeightNormal), "1 normal, 2 close, 3 closest")
	_ = update.MarkFlagRequired("weight")

	remove := &cobra.Command{
		Use:   "remove <id1> <id2>",
		Short: "Remove a friendship",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(func(svc *service.Service) error {
				if err := svc.RemoveFriendship(args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "✅ %s and %s are no longer friends\n", args[0], args[1])
				return nil
			})
		},
	}

	cmd.AddCommand(add, update, remove)
	return cmd
}

func newFriendsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "friends <id>",
		Short: "List a student's friends with tie strength",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open()
			if err != nil {
				return err
			}
			friends, err := svc.Friends(args[0])
			if err != nil {
				return err
			}
			if len(friends) == 0 {
				fmt.Fprintf(a.out, "%s has no friends registered.\n", args[0])
				return nil
			}
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tTIE")
			for _, f := range friends {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.ID, f.Name, f.Category, f.Weight)
			}
			return tw.Flush()
		},
	}
}
