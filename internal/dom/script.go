package dom

// JavaScript evaluated in the page by the Browser backend. Elements are
// tagged with a data-af-ref attribute on first snapshot so later write
// calls can locate them without holding node handles across navigations.

// snapshotScript enumerates visible, enabled form fields and clickable
// controls in document order and returns them as a JSON-shaped object.
const snapshotScript = `(() => {
  const visible = (el) => el.offsetWidth > 0 && el.offsetHeight > 0 &&
    getComputedStyle(el).visibility !== 'hidden' &&
    getComputedStyle(el).display !== 'none';
  let nextRef = window.__afNextRef || 0;
  const refFor = (el) => {
    if (!el.dataset.afRef) { el.dataset.afRef = 'af-' + (nextRef++); }
    return el.dataset.afRef;
  };
  const labelFor = (el) => {
    if (el.id) {
      const l = document.querySelector('label[for="' + CSS.escape(el.id) + '"]');
      if (l) return l.textContent.trim();
    }
    const wrap = el.closest('label');
    if (wrap) return wrap.textContent.trim();
    const prev = el.previousElementSibling;
    if (prev && prev.tagName === 'LABEL') return prev.textContent.trim();
    return '';
  };
  const ancestorsFor = (el) => {
    const out = [];
    for (let p = el.parentElement; p; p = p.parentElement) {
      const data = [...p.attributes]
        .filter(a => a.name.startsWith('data-') && a.name !== 'data-af-ref')
        .map(a => a.value);
      const attrs = [p.id, p.getAttribute('class') || '', ...data]
        .join(' ').toLowerCase().trim();
      if (!attrs && !['FORM', 'SECTION', 'FIELDSET'].includes(p.tagName)) continue;
      out.push({ key: refFor(p), tag: p.tagName.toLowerCase(), attrs: attrs });
    }
    return out;
  };
  const textTypes = ['', 'text', 'email', 'tel', 'url', 'number', 'date', 'search', 'textarea'];
  const fields = [];
  for (const el of document.querySelectorAll('input, textarea, select')) {
    if (!visible(el) || el.disabled) continue;
    const tag = el.tagName.toLowerCase();
    const type = (el.getAttribute('type') || '').toLowerCase();
    let kind;
    if (tag === 'textarea') kind = 'text';
    else if (tag === 'select') kind = 'select';
    else if (type === 'radio') kind = 'radio';
    else if (type === 'checkbox') kind = 'checkbox';
    else if (textTypes.includes(type) && !el.readOnly) kind = 'text';
    else continue;
    const f = {
      ref: refFor(el), kind: kind, tag: tag,
      type: tag === 'input' ? (type || 'text') : tag,
      id: el.id || '', name: el.name || '',
      placeholder: el.getAttribute('placeholder') || '',
      aria_label: el.getAttribute('aria-label') || '',
      label: labelFor(el),
      parent_text: (el.parentElement && el.parentElement.textContent || '').trim(),
      value: el.value || '',
      checked: !!el.checked,
      ancestors: ancestorsFor(el)
    };
    if (kind === 'select') {
      f.options = [...el.options].map(o => ({ value: o.value, text: o.textContent.trim() }));
    }
    fields.push(f);
  }
  const controls = [];
  for (const el of document.querySelectorAll('button, input[type="submit"], input[type="button"], a[role="button"]')) {
    if (!visible(el)) continue;
    const text = ((el.textContent || el.value || '') + ' ' +
      (el.getAttribute('aria-label') || '')).trim();
    controls.push({ ref: refFor(el), text: text, ancestors: ancestorsFor(el) });
  }
  window.__afNextRef = nextRef;
  return { fields: fields, controls: controls };
})()`

// setValueScript writes a value through the native property setter
// obtained from the element prototype, not the possibly-overridden
// instance property, then dispatches the events a keyboard-driven user
// interaction would emit. Frameworks that shadow the setter for state
// tracking ignore direct property assignment; this defeats that.
const setValueScript = `((ref, value, extra) => {
  try {
    const el = document.querySelector('[data-af-ref="' + ref + '"]');
    if (!el) return false;
    const proto = el.tagName === 'TEXTAREA'
      ? HTMLTextAreaElement.prototype
      : HTMLInputElement.prototype;
    const setter = Object.getOwnPropertyDescriptor(proto, 'value').set;
    setter.call(el, value);
    el.dispatchEvent(new Event('input', { bubbles: true }));
    el.dispatchEvent(new InputEvent('input', { bubbles: true, data: value }));
    el.dispatchEvent(new Event('change', { bubbles: true }));
    el.dispatchEvent(new Event('blur', { bubbles: true }));
    if (extra) {
      el.dispatchEvent(new KeyboardEvent('keydown', { bubbles: true }));
      el.dispatchEvent(new KeyboardEvent('keyup', { bubbles: true }));
      el.dispatchEvent(new Event('focusout', { bubbles: true }));
    }
    return true;
  } catch (e) { return false; }
})(%s, %s, %t)`

// selectOptionScript selects an option by value and notifies listeners.
const selectOptionScript = `((ref, value) => {
  try {
    const el = document.querySelector('[data-af-ref="' + ref + '"]');
    if (!el || el.tagName !== 'SELECT') return false;
    el.value = value;
    el.dispatchEvent(new Event('change', { bubbles: true }));
    el.dispatchEvent(new Event('blur', { bubbles: true }));
    return true;
  } catch (e) { return false; }
})(%s, %s)`

// setCheckedScript checks or unchecks a radio or checkbox, dispatching
// change and click as a real interaction would.
const setCheckedScript = `((ref, checked) => {
  try {
    const el = document.querySelector('[data-af-ref="' + ref + '"]');
    if (!el) return false;
    el.checked = checked;
    el.dispatchEvent(new Event('change', { bubbles: true }));
    el.dispatchEvent(new Event('click', { bubbles: true }));
    return true;
  } catch (e) { return false; }
})(%s, %t)`

// clickScript activates a control.
const clickScript = `((ref) => {
  try {
    const el = document.querySelector('[data-af-ref="' + ref + '"]');
    if (!el) return false;
    el.click();
    return true;
  } catch (e) { return false; }
})(%s)`

// highlightScript marks an element with a background that reverts after
// a fixed duration.
const highlightScript = `((ref) => {
  try {
    const el = document.querySelector('[data-af-ref="' + ref + '"]');
    if (!el) return false;
    const original = el.style.background;
    el.style.background = '#d1fae5';
    el.style.transition = 'background 0.5s ease';
    setTimeout(() => { el.style.background = original; }, 1000);
    return true;
  } catch (e) { return false; }
})(%s)`
