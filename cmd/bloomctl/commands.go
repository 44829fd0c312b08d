package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"bloombuilder/internal/inventory"
	"bloombuilder/internal/models"

	"github.com/spf13/pflag"
)

type command struct {
	inv   *inventory.Inventory
	flags *pflag.FlagSet
	out   io.Writer
}

func (c *command) list() error {
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tCOLOR\tPRICE\tQUANTITY")
	for _, f := range c.inv.State().Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t$%.2f\t%d\n", f.ID, f.Name, f.Type, f.Color, f.Price, f.Quantity)
	}
	return w.Flush()
}

func (c *command) add(ctx context.Context) error {
	draft := c.applyFlags(inventory.Draft{})
	created, err := c.inv.Submit(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "added %s (%s)\n", created.Name, created.ID)
	return c.list()
}

func (c *command) update(ctx context.Context, id string) error {
	item, ok := c.find(id)
	if !ok {
		return fmt.Errorf("flower %s not found", id)
	}
	c.inv.BeginEdit(item)
	draft := c.applyFlags(c.inv.State().Edit.Draft)

	updated, err := c.inv.CommitEdit(ctx, id, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "updated %s (%s)\n", updated.Name, updated.ID)
	return c.list()
}

func (c *command) remove(ctx context.Context, id string) error {
	if err := c.inv.Remove(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "removed %s\n", id)
	return c.list()
}

func (c *command) find(id string) (models.Flower, bool) {
	for _, f := range c.inv.State().Items {
		if f.ID == id {
			return f, true
		}
	}
	return models.Flower{}, false
}

// applyFlags copies every flag the user set onto d.
func (c *command) applyFlags(d inventory.Draft) inventory.Draft {
	c.flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "name":
			d.Name, _ = c.flags.GetString("name")
		case "type":
			d.Type, _ = c.flags.GetString("type")
		case "color":
			d.Color, _ = c.flags.GetString("color")
		case "price":
			d.Price, _ = c.flags.GetFloat64("price")
		case "quantity":
			d.Quantity, _ = c.flags.GetInt("quantity")
		case "image-url":
			d.ImageURL, _ = c.flags.GetString("image-url")
		}
	})
	return d
}
