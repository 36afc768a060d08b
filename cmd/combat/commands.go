package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/combat/internal/tracker"
)

func newRollCmd(a *app) *cobra.Command {
	var adv, dis bool
	var dc int
	cmd := &cobra.Command{
		Use:   "roll <formula>",
		Short: "Roll an arbitrary formula, example: d20+3",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formula := args[0]
			if cmd.Flags().Changed("dc") {
				res, err := a.tracker.Check(formula, adv, dis, dc)
				if err != nil {
					return err
				}
				outcome := "failure"
				if res.Success {
					outcome = "success"
				}
				fmt.Fprintf(a.out, "Roll %s = %d vs DC %d: %s\n", formula, res.Total, dc, outcome)
				return nil
			}
			res, err := a.tracker.Roll(formula, adv, dis)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Roll %s = %d\n", formula, res.Total)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&adv, "adv", "a", false, "roll with advantage")
	cmd.Flags().BoolVarP(&dis, "dis", "d", false, "roll with disadvantage")
	cmd.Flags().IntVar(&dc, "dc", 0, "difficulty the roll must meet or beat")
	return cmd
}

func newInitCmd(a *app) *cobra.Command {
	var lair bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Roll initiative for the whole roster",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			entries, err := a.tracker.Initiative(lair)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(a.out, "Roster is empty.")
				return nil
			}
			fmt.Fprintln(a.out, "Initiative rolls:")
			for _, e := range entries {
				line := fmt.Sprintf("%d: %s", e.Value, e.Name)
				if e.Status != "" {
					line += " " + e.Status
				}
				fmt.Fprintln(a.out, line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&lair, "lair", "l", false, "include lair actions in the order")
	return cmd
}

func newJoinCmd(a *app) *cobra.Command {
	var req tracker.JoinRequest
	cmd := &cobra.Command{
		Use:   "join <name>",
		Short: "Add a character to the roster, or update one",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			req.Name = args[0]
			res, err := a.tracker.Join(req)
			if err != nil {
				return err
			}
			if res.Updated {
				fmt.Fprintf(a.out, "Update %s in the roster.\n", req.Name)
			} else {
				fmt.Fprintf(a.out, "Add %s to the roster.\n", req.Name)
			}
			if req.HP != "" {
				fmt.Fprintf(a.out, "Set max HP to %s (%d).\n", req.HP, res.Character.HP.Max)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&req.Init, "init", "i", "", "initiative formula (default from config, d20)")
	f.BoolVarP(&req.Adv, "adv", "a", false, "roll initiative with advantage")
	f.BoolVarP(&req.Dis, "dis", "d", false, "roll initiative with disadvantage")
	f.StringVar(&req.HP, "hp", "", "max HP value or formula")
	f.BoolVar(&req.NPC, "npc", false, "mark the character as an NPC")
	return cmd
}

func newKillCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kill <name>",
		Short: "Remove a character from the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := args[0]
			if a.tracker.Kill(name) {
				fmt.Fprintf(a.out, "%s has been removed from the roster.\n", name)
			} else {
				fmt.Fprintf(a.out, "%s is not in the roster.\n", name)
			}
			return nil
		},
	}
}

func newDealCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "deal <name> <damage>",
		Short: "Deal damage to a character",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			res, err := a.tracker.Deal(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s took %d damage, now has %d HP.\n", res.Name, res.Amount, res.Current)
			if res.Dead {
				fmt.Fprintf(a.out, "%s is DEAD.\n", res.Name)
			}
			return nil
		},
	}
}

func newHealCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "heal <name> <amount>",
		Short: "Heal damage to a character",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			res, err := a.tracker.Heal(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s healed %d damage, now has %d HP.\n", res.Name, res.Amount, res.Current)
			return nil
		},
	}
}

func newTempCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "temp <name> <amount>",
		Short: "Grant temporary HP to a character",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			res, err := a.tracker.Temp(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s rolled %d temporary HP, now has %d temporary HP.\n", res.Name, res.Amount, res.Temp)
			return nil
		},
	}
}

func newWipeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "wipe",
		Short: "Remove every dead character from the roster",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			removed := a.tracker.Wipe()
			if len(removed) == 0 {
				fmt.Fprintln(a.out, "Nobody is dead.")
				return nil
			}
			fmt.Fprintf(a.out, "Removed %s from the roster.\n", strings.Join(removed, ", "))
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every character in the roster",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			chars := a.tracker.List()
			if len(chars) == 0 {
				fmt.Fprintln(a.out, "Roster is empty.")
				return nil
			}
			for _, c := range chars {
				line := fmt.Sprintf("%s [%s] init %s", c.Name, c.Kind, c.Init.String())
				if s := c.Status(); s != "" {
					line += ", " + s
				}
				if c.HP.Temp > 0 {
					line += fmt.Sprintf(" (+%d temp)", c.HP.Temp)
				}
				fmt.Fprintln(a.out, line)
			}
			return nil
		},
	}
}
